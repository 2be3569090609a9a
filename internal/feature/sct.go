// internal/feature/sct.go
package feature

import (
	"github.com/tamzrod/drivecfg/internal/cmdbuf"
	"github.com/tamzrod/drivecfg/internal/result"
)

// Vendor SCT feature control codes.
const (
	sctFeatureLowCurrentSpinUp uint16 = 0xD001
	sctFeatureSSC              uint16 = 0xD002
)

func sctSetState(env Env, op string, feature, state uint16) error {
	buf, err := cmdbuf.SCTFeatureControl(cmdbuf.SCTFunctionSetState, feature, state, cmdbuf.SCTOptionPreserve)
	if err != nil {
		return result.New(result.MemoryFailure, op, err)
	}
	if _, err := env.Transport.SCTWrite(buf); err != nil {
		return result.Errorf(result.Failure, op, "sct feature %04Xh: %w", feature, err)
	}
	return nil
}

func sctGetState(env Env, op string, feature uint16) (uint16, error) {
	buf, err := cmdbuf.SCTFeatureControl(cmdbuf.SCTFunctionReturnState, feature, 0, 0)
	if err != nil {
		return 0, result.New(result.MemoryFailure, op, err)
	}
	st, err := env.Transport.SCTWrite(buf)
	if err != nil {
		return 0, result.Errorf(result.Failure, op, "sct feature %04Xh: %w", feature, err)
	}
	return st.State, nil
}
