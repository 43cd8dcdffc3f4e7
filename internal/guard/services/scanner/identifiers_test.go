package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suiet/guardians/internal/guard/domain"
)

const (
	pkgBad  = "0x1b2c3d4e5f60718293a4b5c6d7e8f9a0b1c2d3e4f5061728394a5b6c7d8e9f00"
	pkgGood = "0x0000000000000000000000000000000000000000000000000000000000000002"
)

func TestScanPackage(t *testing.T) {
	list := domain.NewPackageBlocklist([]string{pkgBad})

	assert.Equal(t, domain.ActionBlock, ScanPackage(list, pkgBad))
	assert.Equal(t, domain.ActionNone, ScanPackage(list, pkgGood))
	// verbatim comparison
	assert.Equal(t, domain.ActionNone, ScanPackage(list, " "+pkgBad))
	assert.Equal(t, domain.ActionNone, ScanPackage(nil, pkgBad))

	v := DecidePackage(list, pkgBad)
	assert.Equal(t, domain.ReasonBlocklist, v.Reason)
	assert.Equal(t, pkgBad, v.Matched)
}

func TestScanObject(t *testing.T) {
	list := domain.NewObjectBlocklist([]string{"0xa11"}, []string{"0xbad", "0xa11"})

	assert.Equal(t, domain.ActionBlock, ScanObject(list, "0xbad"))
	assert.Equal(t, domain.ActionNone, ScanObject(list, "0xa11"))
	assert.Equal(t, domain.ReasonAllowlist, DecideObject(list, "0xa11").Reason)
	assert.Equal(t, domain.ActionNone, ScanObject(list, "0xfff"))
	assert.Equal(t, domain.ActionNone, ScanObject(nil, "0xbad"))
}

func TestScanCoin(t *testing.T) {
	coin := "0xdead::scam::SCAM"
	list := domain.NewCoinBlocklist([]string{coin})

	assert.Equal(t, domain.ActionBlock, ScanCoin(list, coin))
	assert.Equal(t, domain.ActionNone, ScanCoin(list, "0x2::sui::SUI"))
	// case matters for identifiers
	assert.Equal(t, domain.ActionNone, ScanCoin(list, "0xdead::scam::scam"))
	assert.Equal(t, domain.ReasonDefault, DecideCoin(nil, coin).Reason)
}
