// internal/transport/sgio/transport.go
package sgio

import (
	"fmt"

	"github.com/tamzrod/drivecfg/internal/cmdbuf"
	"github.com/tamzrod/drivecfg/internal/device"
)

// ATA device register values.
const (
	ataDeviceLBA = 0x40

	smartLBAMid  = 0x4F
	smartLBAHigh = 0xC2
)

func (d *Device) ModeSense(v device.Variant, req device.ModeSenseRequest, buf []byte) error {
	var cdb []byte
	switch v {
	case device.Long:
		if len(buf) > 0xFFFF {
			return fmt.Errorf("sgio: mode sense(10): allocation %d too large", len(buf))
		}
		cdb = cmdbuf.ModeSense10(req.Page, req.Subpage, uint8(req.Control), req.DisableBlockDescriptors, req.LongLBA, uint16(len(buf)))
	default:
		if len(buf) > 0xFF {
			return fmt.Errorf("sgio: mode sense(6): allocation %d too large", len(buf))
		}
		cdb = cmdbuf.ModeSense6(req.Page, req.Subpage, uint8(req.Control), req.DisableBlockDescriptors, uint8(len(buf)))
	}
	_, err := d.run("mode sense", cdb, dirFromDev, buf)
	return err
}

func (d *Device) ModeSelect(v device.Variant, data []byte, save bool) error {
	var cdb []byte
	switch v {
	case device.Long:
		cdb = cmdbuf.ModeSelect10(save, uint16(len(data)))
	default:
		if len(data) > 0xFF {
			return fmt.Errorf("sgio: mode select(6): parameter list %d too large", len(data))
		}
		cdb = cmdbuf.ModeSelect6(save, uint8(len(data)))
	}
	_, err := d.run("mode select", cdb, dirToDev, data)
	return err
}

// SCTWrite writes the block to the SCT command log (E0h) with
// WRITE LOG (DMA) EXT when GPL is advertised, SMART WRITE LOG otherwise.
// The feature state comes back in the count register.
func (d *Device) SCTWrite(buf []byte) (device.SCTStatus, error) {
	tf := cmdbuf.ATATaskfile{
		Count:          1,
		Device:         ataDeviceLBA,
		Blocks:         1,
		Protocol:       cmdbuf.ATAProtoPIOOut,
		CheckCondition: true,
	}
	switch {
	case d.caps.Has(device.CapGPL) && d.caps.Has(device.CapDMA):
		tf.Command = cmdbuf.ATAWriteLogDMAExt
		tf.Protocol = cmdbuf.ATAProtoDMA
		tf.LBA = cmdbuf.SCTLogAddress
	case d.caps.Has(device.CapGPL):
		tf.Command = cmdbuf.ATAWriteLogExt
		tf.LBA = cmdbuf.SCTLogAddress
	default:
		tf.Command = cmdbuf.ATASmart
		tf.Feature = cmdbuf.SmartWriteLog
		tf.LBA = cmdbuf.SCTLogAddress | smartLBAMid<<8 | smartLBAHigh<<16
	}

	s, err := d.run("sct command", cmdbuf.ATAPassThrough16(tf), dirToDev, buf)
	if err != nil {
		return device.SCTStatus{}, err
	}
	if s.ATA == nil {
		return device.SCTStatus{}, nil
	}
	return device.SCTStatus{State: s.ATA.Count, Options: uint16(s.ATA.LBA)}, nil
}

func (d *Device) SetFeatures(req device.SetFeatures) error {
	tf := cmdbuf.ATATaskfile{
		Command:  cmdbuf.ATASetFeatures,
		Feature:  uint16(req.Subcommand),
		Count:    req.Count,
		LBA:      uint64(req.LBALow) | uint64(req.LBAMid)<<8 | uint64(req.LBAHigh&0xFF)<<16 | uint64(req.LBAHigh>>8)<<40,
		Device:   ataDeviceLBA,
		Protocol: cmdbuf.ATAProtoNonData,
	}
	_, err := d.run("set features", cmdbuf.ATAPassThrough16(tf), dirNone, nil)
	return err
}

func (d *Device) Identify(buf []byte) error {
	if len(buf) < device.IdentifyLen {
		return fmt.Errorf("sgio: identify: buffer %d bytes", len(buf))
	}
	tf := cmdbuf.ATATaskfile{
		Command:  cmdbuf.ATAIdentifyDevice,
		Count:    1,
		Protocol: cmdbuf.ATAProtoPIOIn,
		DataIn:   true,
		Blocks:   1,
	}
	_, err := d.run("identify", cmdbuf.ATAPassThrough16(tf), dirFromDev, buf[:device.IdentifyLen])
	return err
}

// InquiryVPD reads a vital product data page into buf.
func (d *Device) InquiryVPD(page uint8, buf []byte) error {
	if len(buf) > 0xFFFF {
		return fmt.Errorf("sgio: inquiry: allocation %d too large", len(buf))
	}
	_, err := d.run("inquiry", cmdbuf.InquiryVPD(page, uint16(len(buf))), dirFromDev, buf)
	return err
}

var _ device.Transport = (*Device)(nil)
