package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

type ProductionModule struct {
	dscope.Module
}

func ForProduction() ProductionModule {
	return ProductionModule{}
}

func (ProductionModule) Mode() Mode {
	return ModeProduction
}

func (ProductionModule) T() *testing.T {
	return nil
}

type TestModule struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) TestModule {
	return TestModule{
		t: t,
	}
}

func (m TestModule) Mode() Mode {
	return ModeDevelopment
}

func (m TestModule) T() *testing.T {
	return m.t
}
