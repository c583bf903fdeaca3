package m68000

// Fault is an exception vector raised during instruction execution, or
// FaultNone when the operation succeeded. The nonzero values are the
// raw 68000 vector numbers.
type Fault uint8

const (
	FaultNone         Fault = 0
	FaultAccessError  Fault = Fault(VectorAccessError)
	FaultAddressError Fault = Fault(VectorAddressError)
)

// Exception vectors of the 68000. The FormatError and OnChipInterrupt
// vectors are only used by the SCC68070.
const (
	VectorResetSspPc uint8 = 0
	// VectorAccessError is the bus error vector, raised when the
	// accessed address is not in the memory map of the system.
	VectorAccessError            uint8 = 2
	VectorAddressError           uint8 = 3
	VectorIllegalInstruction     uint8 = 4
	VectorZeroDivide             uint8 = 5
	VectorChkInstruction         uint8 = 6
	VectorTrapvInstruction       uint8 = 7
	VectorPrivilegeViolation     uint8 = 8
	VectorTrace                  uint8 = 9
	VectorLineAEmulator          uint8 = 10
	VectorLineFEmulator          uint8 = 11
	VectorFormatError            uint8 = 14
	VectorUninitializedInterrupt uint8 = 15
	// VectorSpuriousInterrupt is taken when there is a bus error
	// indication during interrupt processing.
	VectorSpuriousInterrupt     uint8 = 24
	VectorLevel1Interrupt       uint8 = 25
	VectorLevel2Interrupt       uint8 = 26
	VectorLevel3Interrupt       uint8 = 27
	VectorLevel4Interrupt       uint8 = 28
	VectorLevel5Interrupt       uint8 = 29
	VectorLevel6Interrupt       uint8 = 30
	VectorLevel7Interrupt       uint8 = 31
	VectorTrap0Instruction      uint8 = 32
	VectorTrap15Instruction     uint8 = 47
	VectorLevel1OnChipInterrupt uint8 = 57
	VectorLevel7OnChipInterrupt uint8 = 63
	VectorUserInterrupt         uint8 = 64
)

// vectorPriority maps a vector to its processing priority; lower means
// higher priority. Reset has the highest priority of all, but it is
// given the highest number here so that it sorts last: the pending set
// is processed from the lowest priority up, and reset processing clears
// everything else.
func vectorPriority(vector uint8) uint8 {
	switch {
	case vector == VectorAddressError:
		return 0
	case vector == VectorAccessError:
		return 1
	case vector == VectorTrace:
		return 2
	case vector >= VectorSpuriousInterrupt && vector <= VectorLevel7Interrupt,
		vector >= VectorUserInterrupt:
		return 3
	case vector == VectorIllegalInstruction:
		return 4
	case vector == VectorPrivilegeViolation:
		return 5
	default:
		return 255
	}
}

func isInterrupt(vector uint8) bool {
	return vector >= VectorLevel1Interrupt && vector <= VectorLevel7Interrupt ||
		vector >= VectorLevel1OnChipInterrupt && vector <= VectorLevel7OnChipInterrupt
}

// Exception is a pending exception request, with its vector number and
// processing priority.
type Exception struct {
	Vector   uint8
	priority uint8
}

// ExceptionFromVector creates an exception request for the given
// vector.
func ExceptionFromVector(vector uint8) Exception {
	return Exception{Vector: vector, priority: vectorPriority(vector)}
}

// IsInterrupt reports whether the exception is an external or on-chip
// interrupt.
func (e Exception) IsInterrupt() bool {
	return isInterrupt(e.Vector)
}

// Exception requests the CPU to process the given exception before the
// next instruction. Reset, trace and interrupt requests wake a stopped
// CPU; a reset request also restarts a halted one.
func (c *CPU) Exception(e Exception) {
	if e.Vector == VectorResetSspPc || e.Vector == VectorTrace || e.IsInterrupt() {
		c.stop = false
	}
	if e.Vector == VectorResetSspPc {
		c.halted = false
	}

	// The pending set holds at most one exception per priority
	// level, mirroring how real hardware latches requests.
	for _, p := range c.pending {
		if p.priority == e.priority {
			return
		}
	}
	i := 0
	for i < len(c.pending) && c.pending[i].priority > e.priority {
		i++
	}
	c.pending = append(c.pending, Exception{})
	copy(c.pending[i+1:], c.pending[i:])
	c.pending[i] = e
}

// reset fetches the reset vectors: initial SSP from address 0 and
// initial PC from address 4. A bus error while reading them halts the
// CPU, as there is nothing sensible left to execute.
func (c *CPU) reset() int {
	ssp, ok := c.Mem.GetLong(0)
	if !ok {
		c.halted = true
		return 0
	}
	pc, ok := c.Mem.GetLong(4)
	if !ok {
		c.halted = true
		return 0
	}
	c.Reg.SSP = ssp
	c.Reg.PC = pc
	c.Reg.SR.T = false
	c.Reg.SR.S = true
	c.Reg.SR.InterruptMask = 7
	c.stop = false

	return c.timing.VectorReset
}

// processPendingExceptions processes every pending exception that is
// not masked, returning the total processing time. Masked interrupts
// stay pending. Exceptions are processed from the lowest priority to
// the highest, so the stack frame of the highest-priority one ends up
// on top and its handler runs first.
func (c *CPU) processPendingExceptions() int {
	ready := c.pending[:0:0]
	kept := c.pending[:0]
	for _, e := range c.pending {
		if e.IsInterrupt() {
			// MC68000UM 6.3.2: level 7 interrupts cannot be
			// inhibited by the interrupt priority mask.
			level := e.Vector & 7
			if level != 7 && level <= c.Reg.SR.InterruptMask {
				kept = append(kept, e)
				continue
			}
		}
		ready = append(ready, e)
	}
	c.pending = kept

	total := 0
	for _, e := range ready {
		if e.Vector == VectorResetSspPc {
			c.pending = c.pending[:0]
			return c.reset()
		}

		cycles, f := c.processException(e.Vector)
		total += cycles
		if f == FaultNone {
			continue
		}

		if f == FaultAccessError {
			if e.Vector == VectorAccessError {
				// A bus error while pushing the bus error
				// frame is a double fault; the processor
				// halts until an external reset.
				c.halted = true
				return total
			}
			if e.IsInterrupt() {
				c.Exception(ExceptionFromVector(VectorSpuriousInterrupt))
				continue
			}
		}
		c.Exception(ExceptionFromVector(uint8(f)))
	}

	return total
}

// processException pushes the exception stack frame, loads PC from the
// vector table and returns the processing time. Entering an interrupt
// handler raises the mask to the interrupt's level.
func (c *CPU) processException(vector uint8) (int, Fault) {
	sr := c.Reg.SR.Word()
	c.Reg.SR.T = false
	c.Reg.SR.S = true
	if isInterrupt(vector) {
		c.Reg.SR.InterruptMask = vector & 7
	}

	switch c.timing.stackFormat {
	case MC68000:
		if f := c.pushLong(c.Reg.PC); f != FaultNone {
			return 0, f
		}
		if f := c.pushWord(sr); f != FaultNone {
			return 0, f
		}

		if vector == VectorAccessError || vector == VectorAddressError {
			// Group 0 frame. MC68000UM 6.3.9.1: it is the
			// responsibility of the handler to clean up the
			// stack and determine where to continue.
			if f := c.pushWord(c.currentOpcode); f != FaultNone {
				return 0, f
			}
			if f := c.pushLong(0); f != FaultNone { // access address
				return 0, f
			}
			if f := c.pushWord(0); f != FaultNone { // function code
				return 0, f
			}
		}

	case SCC68070:
		if vector == VectorAccessError || vector == VectorAddressError {
			// Long format frame. The internal state words are
			// not emulated and pushed as zero.
			words := []uint16{0, c.currentOpcode, c.currentOpcode}
			for _, w := range words {
				if f := c.pushWord(w); f != FaultNone {
					return 0, f
				}
			}
			for i := 0; i < 3; i++ { // DBIN, TPF, TPD
				if f := c.pushLong(0); f != FaultNone {
					return 0, f
				}
			}
			for i := 0; i < 4; i++ { // internal, internal, MM, SSW
				if f := c.pushWord(0); f != FaultNone {
					return 0, f
				}
			}
			if f := c.pushWord(0xF000 | uint16(vector)*4); f != FaultNone {
				return 0, f
			}
		} else {
			// Short format frame.
			if f := c.pushWord(uint16(vector) * 4); f != FaultNone {
				return 0, f
			}
		}

		if f := c.pushLong(c.Reg.PC); f != FaultNone {
			return 0, f
		}
		if f := c.pushWord(sr); f != FaultNone {
			return 0, f
		}
	}

	pc, ok := c.Mem.GetLong(uint32(vector) * 4)
	if !ok {
		return 0, FaultAccessError
	}
	c.Reg.PC = pc

	return c.timing.vectorTime(vector), FaultNone
}
