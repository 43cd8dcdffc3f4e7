package feed

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/suiet/guardians/internal/guard/domain"
)

// document is the decoded content of one list file.
type document struct {
	allow []string
	block []string
}

// decodeDualList reads {"allowlist": [...], "blocklist": [...]}. Missing keys are empty.
func decodeDualList(body []byte) (document, error) {
	root, err := parseRoot(body)
	if err != nil {
		return document{}, err
	}
	if !root.IsObject() {
		return document{}, fmt.Errorf("%w: expected an object", ErrMalformedList)
	}
	allow, err := stringArray(root, "allowlist")
	if err != nil {
		return document{}, err
	}
	block, err := stringArray(root, "blocklist")
	if err != nil {
		return document{}, err
	}
	return document{allow: allow, block: block}, nil
}

// decodeBlockList reads {"blocklist": [...]} or a bare array.
func decodeBlockList(body []byte) (document, error) {
	root, err := parseRoot(body)
	if err != nil {
		return document{}, err
	}
	if root.IsArray() {
		block, err := toStrings(root, "$")
		return document{block: block}, err
	}
	if !root.IsObject() {
		return document{}, fmt.Errorf("%w: expected an object or array", ErrMalformedList)
	}
	block, err := stringArray(root, "blocklist")
	return document{block: block}, err
}

func parseRoot(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", ErrMalformedList)
	}
	return gjson.ParseBytes(body), nil
}

func stringArray(root gjson.Result, key string) ([]string, error) {
	v := root.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: %q is not an array", ErrMalformedList, key)
	}
	return toStrings(v, key)
}

func toStrings(arr gjson.Result, key string) ([]string, error) {
	var (
		out []string
		bad error
	)
	arr.ForEach(func(_, item gjson.Result) bool {
		if item.Type != gjson.String {
			bad = fmt.Errorf("%w: %q holds a non-string entry %s", ErrMalformedList, key, item.Raw)
			return false
		}
		out = append(out, item.String())
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return out, nil
}

func (d document) domainList() *domain.DomainBlocklist {
	return domain.NewDomainBlocklist(d.allow, d.block)
}

func (d document) packageList() *domain.PackageBlocklist {
	return domain.NewPackageBlocklist(d.block)
}

func (d document) objectList() *domain.ObjectBlocklist {
	return domain.NewObjectBlocklist(d.allow, d.block)
}

func (d document) coinList() *domain.CoinBlocklist {
	return domain.NewCoinBlocklist(d.block)
}
