package bitstream

import (
	"github.com/clbtoolchain/clbfab/boolexpr"
	"github.com/clbtoolchain/clbfab/clbcfg"
	"github.com/clbtoolchain/clbfab/clberr"
	"github.com/clbtoolchain/clbfab/fabric"
	"github.com/clbtoolchain/clbfab/signal"
)

// Decode unpacks a 1632-bit buffer into a fully populated Record. Every
// field in the buffer maps to something in the Record; the Peripherals
// fields are never touched since they are not part of the bitstream.
func Decode(b *Bits) (*clbcfg.Record, error) {
	r := clbcfg.New()

	for i := 0; i < fabric.BLECount; i++ {
		cfg, err := decodeBLE(b, i)
		if err != nil {
			return nil, err
		}
		r.BLEs[i] = cfg
	}

	for g := 0; g < fabric.PPSGroupCount; g++ {
		code, err := bitsToInt(b, ppsOutBits[g][:])
		if err != nil {
			return nil, err
		}
		p := clbcfg.NewPPSOut(fabric.PPSGroup(g))
		if err := p.SetCode(uint8(code)); err != nil {
			return nil, err
		}
		r.PPSOut[g] = p
	}

	for g := 0; g < fabric.IRQGroupCount; g++ {
		code, err := bitsToInt(b, irqBits[g][:])
		if err != nil {
			return nil, err
		}
		irq := clbcfg.NewIRQOut(fabric.IRQGroup(g))
		if err := irq.SetCode(uint8(code)); err != nil {
			return nil, err
		}
		r.IRQOut[g] = irq
	}

	for i := 0; i < clbcfg.MuxCount; i++ {
		mux, err := decodeMux(b, i)
		if err != nil {
			return nil, err
		}
		r.Muxes[i] = mux
	}

	clkdivRaw, err := bitsToInt(b, clkDivBits[:])
	if err != nil {
		return nil, err
	}
	clkdiv, err := fabric.ParseClkDiv(uint8(clkdivRaw))
	if err != nil {
		return nil, clberr.NewUnknownEncoding("CLKDIV", clkdivRaw)
	}
	r.ClkDiv = clkdiv

	counter, err := decodeCounter(b)
	if err != nil {
		return nil, err
	}
	r.Counter = counter

	return r, nil
}

func decodeBLE(b *Bits, idx int) (clbcfg.BLECfg, error) {
	maskAddrs := lutSettingBits(idx)
	maskVal, err := bitsToInt(b, maskAddrs[:])
	if err != nil {
		return clbcfg.BLECfg{}, err
	}
	mask := boolexpr.LUTMask(maskVal)

	flopBit, err := b.GetBit(flopSelBit(idx))
	if err != nil {
		return clbcfg.BLECfg{}, err
	}

	cfg := clbcfg.BLECfg{LUTMask: &mask, Flop: clbcfg.FlopSel(flopBit)}

	aAddrs, bAddrs, cAddrs, dAddrs := lutInputBitAddresses(idx)
	ports := [4]struct {
		letter signal.Port
		addrs  [5]int
	}{
		{signal.PortA, aAddrs},
		{signal.PortB, bAddrs},
		{signal.PortC, cAddrs},
		{signal.PortD, dAddrs},
	}
	for _, p := range ports {
		code, err := bitsToInt(b, p.addrs[:])
		if err != nil {
			return clbcfg.BLECfg{}, err
		}
		ps, ok := signal.ByCode(p.letter, uint8(code))
		if !ok {
			return clbcfg.BLECfg{}, clberr.NewUnknownEncoding("LUT_I_"+p.letter.String(), code)
		}
		cfg.SetPort(p.letter, signal.Signal{Port: ps.Port, Code: ps.Code})
	}

	return cfg, nil
}

func decodeMux(b *Bits, idx int) (clbcfg.MuxCfg, error) {
	addrs := muxCfgBits[idx]
	clbinRaw, err := bitsToInt(b, addrs.clbin[:])
	if err != nil {
		return clbcfg.MuxCfg{}, err
	}
	clbin, err := fabric.ParseCLBIn(uint8(clbinRaw))
	if err != nil {
		return clbcfg.MuxCfg{}, clberr.NewUnknownEncoding("CLBIN", clbinRaw)
	}
	insyncRaw, err := bitsToInt(b, addrs.insync[:])
	if err != nil {
		return clbcfg.MuxCfg{}, err
	}
	insync, err := fabric.ParseInSync(uint8(insyncRaw))
	if err != nil {
		return clbcfg.MuxCfg{}, clberr.NewUnknownEncoding("INSYNC", insyncRaw)
	}
	return clbcfg.MuxCfg{CLBIn: clbin, InSync: insync}, nil
}

func decodeCounter(b *Bits) (clbcfg.Counter, error) {
	var c clbcfg.Counter

	stopRaw, err := bitsToInt(b, countStopBits[:])
	if err != nil {
		return c, err
	}
	stop, err := fabric.ParseCounterIn(uint8(stopRaw))
	if err != nil {
		return c, clberr.NewUnknownEncoding("CNT_STOP", stopRaw)
	}
	c.Stop = stop

	resetRaw, err := bitsToInt(b, countResetBits[:])
	if err != nil {
		return c, err
	}
	reset, err := fabric.ParseCounterIn(uint8(resetRaw))
	if err != nil {
		return c, clberr.NewUnknownEncoding("CNT_RESET", resetRaw)
	}
	c.Reset = reset

	for i := 0; i < 8; i++ {
		raw, err := bitsToInt(b, countMuxCfgBits[i][:])
		if err != nil {
			return c, err
		}
		v, err := fabric.ParseCntMux(uint8(raw))
		if err != nil {
			return c, clberr.NewUnknownEncoding(clbcfg.CountIsName(i), raw)
		}
		c.CountIs[i] = v
	}

	return c, nil
}

// Encode packs a Record into a fresh 1632-bit buffer. Unset BLE port
// selections encode as code 0, matching the decode-always-populates rule;
// an unset LUTMask (nil) encodes as an all-zero mask.
func Encode(r *clbcfg.Record) (*Bits, error) {
	b := &Bits{}

	for i := 0; i < fabric.BLECount; i++ {
		if err := encodeBLE(b, i, &r.BLEs[i]); err != nil {
			return nil, err
		}
	}

	for g := 0; g < fabric.PPSGroupCount; g++ {
		p := r.PPSOut[g]
		code := uint8(0)
		if p != nil {
			code = p.Code()
		}
		if err := intToBits(b, "PPS_OUT", int(code), ppsOutBits[g][:]); err != nil {
			return nil, err
		}
	}

	for g := 0; g < fabric.IRQGroupCount; g++ {
		irq := r.IRQOut[g]
		code := uint8(0)
		if irq != nil {
			code = irq.Code()
		}
		if err := intToBits(b, "IRQ", int(code), irqBits[g][:]); err != nil {
			return nil, err
		}
	}

	for i := 0; i < clbcfg.MuxCount; i++ {
		mux := r.Muxes[i]
		if err := intToBits(b, "CLBIN", int(mux.CLBIn), muxCfgBits[i].clbin[:]); err != nil {
			return nil, err
		}
		if err := intToBits(b, "INSYNC", int(mux.InSync), muxCfgBits[i].insync[:]); err != nil {
			return nil, err
		}
	}

	if err := intToBits(b, "CLKDIV", int(r.ClkDiv), clkDivBits[:]); err != nil {
		return nil, err
	}

	if err := intToBits(b, "CNT_STOP", int(r.Counter.Stop), countStopBits[:]); err != nil {
		return nil, err
	}
	if err := intToBits(b, "CNT_RESET", int(r.Counter.Reset), countResetBits[:]); err != nil {
		return nil, err
	}
	for i := 0; i < 8; i++ {
		if err := intToBits(b, clbcfg.CountIsName(i), int(r.Counter.CountIs[i]), countMuxCfgBits[i][:]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func encodeBLE(b *Bits, idx int, cfg *clbcfg.BLECfg) error {
	maskAddrs := lutSettingBits(idx)
	maskVal := 0
	if cfg.LUTMask != nil {
		maskVal = int(*cfg.LUTMask)
	}
	if err := intToBits(b, "LUT_CONFIG", maskVal, maskAddrs[:]); err != nil {
		return err
	}

	if err := b.SetBit(flopSelBit(idx), bool(cfg.Flop)); err != nil {
		return err
	}

	aAddrs, bAddrs, cAddrs, dAddrs := lutInputBitAddresses(idx)
	ports := [4]struct {
		letter signal.Port
		addrs  [5]int
	}{
		{signal.PortA, aAddrs},
		{signal.PortB, bAddrs},
		{signal.PortC, cAddrs},
		{signal.PortD, dAddrs},
	}
	for _, p := range ports {
		code := 0
		if sig, ok := cfg.Port(p.letter); ok {
			code = int(sig.Code)
		}
		if err := intToBits(b, "LUT_I_"+p.letter.String(), code, p.addrs[:]); err != nil {
			return err
		}
	}
	return nil
}
