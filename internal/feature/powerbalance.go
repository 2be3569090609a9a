// internal/feature/powerbalance.go
package feature

import (
	"github.com/tamzrod/drivecfg/internal/device"
	"github.com/tamzrod/drivecfg/internal/modepage"
	"github.com/tamzrod/drivecfg/internal/result"
)

const (
	opSetPowerBalance = "set power balance"
	opGetPowerBalance = "get power balance"
)

// ATA encoding.
const (
	setFeaturesPowerBalance = 0x5C
	powerBalanceEnable      = 1
	powerBalanceDisable     = 2

	powerBalanceLegacyEnabled = 1 << 9
	powerBalanceEnabled       = 1 << 11
)

// PowerBalance is the power balance state of a drive.
type PowerBalance struct {
	Supported bool
	Enabled   bool
}

// SetPowerBalance turns power balance on or off.
func SetPowerBalance(env Env, enable bool) error {
	switch env.Device.Class {
	case device.ClassATA:
		return setATAPowerBalance(env, enable)
	case device.ClassSCSI:
		return setSASPowerBalance(env, enable)
	default:
		return result.Errorf(result.NotSupported, opSetPowerBalance, "%s drive", env.Device.Class)
	}
}

// GetPowerBalance reads the power balance state.
func GetPowerBalance(env Env) (PowerBalance, error) {
	switch env.Device.Class {
	case device.ClassATA:
		return getATAPowerBalance(env)
	case device.ClassSCSI:
		return getSASPowerBalance(env)
	default:
		return PowerBalance{}, result.Errorf(result.NotSupported, opGetPowerBalance, "%s drive", env.Device.Class)
	}
}

func ataPowerBalanceSupported(env Env) bool {
	return env.Device.Caps.Any(device.CapPowerBalanceLegacy | device.CapPowerBalance)
}

func getATAPowerBalance(env Env) (PowerBalance, error) {
	const op = opGetPowerBalance

	if err := env.requireFamily(op, device.FamilySeagate); err != nil {
		return PowerBalance{}, err
	}
	if !ataPowerBalanceSupported(env) {
		return PowerBalance{}, nil
	}

	id, err := env.identify(op)
	if err != nil {
		return PowerBalance{}, err
	}
	w := device.IdentifyWord(id, device.WordPowerBalance)

	pb := PowerBalance{Supported: true}
	if env.Device.Caps.Has(device.CapPowerBalance) {
		pb.Enabled = w&powerBalanceEnabled != 0
	} else {
		pb.Enabled = w&powerBalanceLegacyEnabled != 0
	}
	return pb, nil
}

func setATAPowerBalance(env Env, enable bool) error {
	const op = opSetPowerBalance

	if err := env.requireFamily(op, device.FamilySeagate); err != nil {
		return err
	}
	if !ataPowerBalanceSupported(env) {
		return result.Errorf(result.NotSupported, op, "power balance not advertised")
	}

	req := device.SetFeatures{Subcommand: setFeaturesPowerBalance, LBALow: powerBalanceDisable}
	if enable {
		req.LBALow = powerBalanceEnable
	}
	if err := env.Transport.SetFeatures(req); err != nil {
		return result.Errorf(result.Failure, op, "set features %02Xh: %w", req.Subcommand, err)
	}
	return nil
}

// fetchPowerPage reads the power consumption page. A drive without it
// does not support power balance.
func fetchPowerPage(env Env, op string, pc device.PageControl) (*modepage.Page, error) {
	p, err := modepage.Fetch(env.Transport, modepage.PowerConsumption, modepage.PowerConsumptionRequested, pc)
	if result.CodeOf(err) == result.Failure {
		return nil, result.Errorf(result.NotSupported, op, "power consumption page: %w", err)
	}
	return p, err
}

func getSASPowerBalance(env Env) (PowerBalance, error) {
	const op = opGetPowerBalance

	if err := env.requireFamily(op, device.FamilySeagate, device.FamilySeagateVendorA); err != nil {
		return PowerBalance{}, err
	}
	p, err := fetchPowerPage(env, op, device.PageCurrent)
	if err != nil {
		return PowerBalance{}, err
	}
	b, err := p.Byte(modepage.PowerActiveLevelOffset)
	if err != nil {
		return PowerBalance{}, result.New(result.NotSupported, op, err)
	}
	return PowerBalance{
		Supported: true,
		Enabled:   b&modepage.PowerActiveLevelMask == modepage.PowerLevelLowest,
	}, nil
}

func setSASPowerBalance(env Env, enable bool) error {
	const op = opSetPowerBalance

	if err := env.requireFamily(op, device.FamilySeagate, device.FamilySeagateVendorA); err != nil {
		return err
	}

	level := byte(modepage.PowerLevelLowest)
	var ident byte
	if !enable {
		def, err := fetchPowerPage(env, op, device.PageDefault)
		if err != nil {
			return err
		}
		lb, err := def.Byte(modepage.PowerActiveLevelOffset)
		if err != nil {
			return result.New(result.NotSupported, op, err)
		}
		ib, err := def.Byte(modepage.PowerIdentifierOffset)
		if err != nil {
			return result.New(result.NotSupported, op, err)
		}
		level, ident = lb&modepage.PowerActiveLevelMask, ib
	}

	cur, err := fetchPowerPage(env, op, device.PageCurrent)
	if err != nil {
		return err
	}
	if err := cur.WriteBits(modepage.PowerActiveLevelOffset, modepage.PowerActiveLevelMask, level); err != nil {
		return result.New(result.NotSupported, op, err)
	}
	if !enable {
		if err := cur.WriteBits(modepage.PowerIdentifierOffset, 0xFF, ident); err != nil {
			return result.New(result.NotSupported, op, err)
		}
	}
	return modepage.Store(env.Transport, cur, true)
}
