// Package m68000 implements a cycle-accounted Motorola 68000 CPU
// interpreter. The host provides memory through the Memory interface;
// the CPU fetches, decodes and executes instructions from it and
// reports the number of clock cycles consumed.
package m68000

// CPU is a 68000 processor core. Create one with New or NewNoReset,
// then drive it with Cycle, CycleUntilException or the single-step
// Interpreter methods.
type CPU struct {
	// Reg is the register file. It may be freely inspected and
	// modified between instructions.
	Reg Registers
	// Mem is the memory the CPU executes from.
	Mem Memory

	model  Model
	timing *timing

	pending       []Exception
	stop          bool
	halted        bool
	currentOpcode uint16
	debugger      *Debugger
}

// New creates a CPU of the given model with a pending reset exception,
// so the first instruction executed is the one the reset vector points
// at.
func New(model Model, mem Memory) *CPU {
	c := NewNoReset(model, mem)
	c.Exception(ExceptionFromVector(VectorResetSspPc))
	return c
}

// NewNoReset creates a CPU of the given model without the initial reset
// exception. The caller is expected to set up PC and SSP itself.
func NewNoReset(model Model, mem Memory) *CPU {
	t := &mc68000Timing
	if model == SCC68070 {
		t = &scc68070Timing
	}
	c := &CPU{Mem: mem, model: model, timing: t}
	c.Reg.Init()
	return c
}

// Model returns the CPU model being emulated.
func (c *CPU) Model() Model {
	return c.model
}

// Stopped reports whether the CPU has executed a STOP instruction and
// is waiting for an exception.
func (c *CPU) Stopped() bool {
	return c.stop
}

// Halted reports whether the CPU has halted after a double Access
// Error. Only an external reset restarts a halted CPU.
func (c *CPU) Halted() bool {
	return c.halted
}

// Cycle runs the CPU for at least the given number of cycles and
// returns the number of cycles actually executed.
//
// If the next instruction takes the cycle count past the requested
// amount it is still executed in full, so the return value may exceed
// cycles. The caller is responsible for carrying the extra cycles over.
//
// A halted CPU makes no progress; the cycles consumed before the halt
// are returned.
func (c *CPU) Cycle(cycles int) int {
	total := 0
	for total < cycles {
		total += c.Interpreter()
		if c.stop {
			return cycles
		}
		if c.halted {
			return total
		}
	}
	return total
}

// CycleUntilException runs the CPU until an exception occurs or at
// least the given number of cycles have been executed, whichever comes
// first. It returns the number of cycles actually executed and the
// exception vector, or FaultNone if none occurred.
func (c *CPU) CycleUntilException(cycles int) (int, Fault) {
	total := 0
	for total < cycles {
		n, v := c.InterpreterException()
		total += n
		if v != FaultNone || c.stop || c.halted {
			return total, v
		}
	}
	return total, FaultNone
}

// LoopUntilExceptionStop runs the CPU until an exception or a STOP
// instruction occurs. It returns the number of cycles executed and the
// exception vector; FaultNone means the CPU executed STOP or halted.
func (c *CPU) LoopUntilExceptionStop() (int, Fault) {
	total := 0
	for {
		n, v := c.InterpreterException()
		total += n
		if v != FaultNone || c.stop || c.halted {
			return total, v
		}
	}
}

// Interpreter runs the interpreter loop once, returning the cycle count
// of the executed instruction. An exception raised by the instruction
// is requested on the CPU for processing before the next one.
//
// If the CPU is stopped, returns 0 and executes nothing.
func (c *CPU) Interpreter() int {
	cycles, v := c.InterpreterException()
	if v != FaultNone {
		c.Exception(ExceptionFromVector(uint8(v)))
	}
	return cycles
}

// InterpreterException runs the interpreter loop once, returning the
// cycle count and the vector of the exception raised by the executed
// instruction, if any. Unlike Interpreter, the exception is not
// requested on the CPU; pass it to Exception to process it.
//
// This method may or may not execute an instruction: a stopped CPU
// returns (0, FaultNone), and an Access Error during instruction fetch
// returns the vector with no instruction executed.
func (c *CPU) InterpreterException() (int, Fault) {
	if c.stop || c.halted {
		return 0, FaultNone
	}

	cycles := 0
	if len(c.pending) != 0 {
		cycles += c.processPendingExceptions()
		if c.halted {
			return cycles, FaultNone
		}
	}

	if c.debugger != nil {
		c.debugger.onExecute(c, c.Reg.PC)
	}

	inst, f := c.fetchInstruction()
	if f != FaultNone {
		return cycles, f
	}

	c.currentOpcode = inst.Opcode
	trace := c.Reg.SR.T

	n, f := executeTable[inst.Isa](c, &inst)
	if f != FaultNone {
		return cycles, f
	}
	cycles += n
	if trace && !inst.Isa.isPrivileged() {
		return cycles, Fault(VectorTrace)
	}
	return cycles, FaultNone
}

// DisassemblerInterpreter is Interpreter with the executed instruction
// disassembled, for execution tracing.
func (c *CPU) DisassemblerInterpreter() (string, int) {
	dis, cycles, v := c.DisassemblerInterpreterException()
	if v != FaultNone {
		c.Exception(ExceptionFromVector(uint8(v)))
	}
	return dis, cycles
}

// DisassemblerInterpreterException is InterpreterException with the
// executed instruction disassembled.
func (c *CPU) DisassemblerInterpreterException() (string, int, Fault) {
	if c.stop || c.halted {
		return "", 0, FaultNone
	}

	cycles := 0
	if len(c.pending) != 0 {
		cycles += c.processPendingExceptions()
		if c.halted {
			return "", cycles, FaultNone
		}
	}

	if c.debugger != nil {
		c.debugger.onExecute(c, c.Reg.PC)
	}

	inst, f := c.fetchInstruction()
	if f != FaultNone {
		return "", cycles, f
	}

	c.currentOpcode = inst.Opcode
	dis := inst.String()
	trace := c.Reg.SR.T

	n, f := executeTable[inst.Isa](c, &inst)
	if f != FaultNone {
		return dis, cycles, f
	}
	cycles += n
	if trace && !inst.Isa.isPrivileged() {
		return dis, cycles, Fault(VectorTrace)
	}
	return dis, cycles, FaultNone
}

// fetchInstruction decodes the instruction at PC and advances PC past
// it, extension words included. PC is advanced even when decoding
// fails, mirroring the prefetch behavior of the hardware.
func (c *CPU) fetchInstruction() (Instruction, Fault) {
	it := c.iterFromPC()
	inst, f := DecodeInstruction(it)
	c.Reg.PC = it.NextAddr
	return inst, f
}

// executeTable dispatches a decoded instruction to its executor. Each
// entry unpacks the operand fields its instruction class uses.
var executeTable = [isaCount]func(*CPU, *Instruction) (int, Fault){
	IsaUnknown: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeUnknownInstruction()
	},
	IsaAbcd: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAbcd(i.Op.Rx, i.Op.Dir, i.Op.Ry)
	},
	IsaAdd: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAdd(i.Op.Rx, i.Op.Dir, i.Op.Size, i.Op.AM)
	},
	IsaAdda: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAdda(i.Op.Rx, i.Op.Size, i.Op.AM)
	},
	IsaAddi: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAddi(i.Op.Size, i.Op.AM, i.Op.Imm)
	},
	IsaAddq: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAddq(i.Op.Count, i.Op.Size, i.Op.AM)
	},
	IsaAddx: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAddx(i.Op.Rx, i.Op.Size, i.Op.Dir, i.Op.Ry)
	},
	IsaAnd: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAnd(i.Op.Rx, i.Op.Dir, i.Op.Size, i.Op.AM)
	},
	IsaAndi: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAndi(i.Op.Size, i.Op.AM, i.Op.Imm)
	},
	IsaAndiccr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAndiccr(uint16(i.Op.Imm))
	},
	IsaAndisr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAndisr(uint16(i.Op.Imm))
	},
	IsaAsm: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAsm(i.Op.Dir, i.Op.AM)
	},
	IsaAsr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeAsr(i.Op.Count, i.Op.Dir, i.Op.Size, i.Op.IR, i.Op.Ry)
	},
	IsaBcc: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBcc(i.PC+2, i.Op.Cond, i.Op.Disp)
	},
	IsaBchg: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBchg(i.Op.AM, i.Op.Count)
	},
	IsaBclr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBclr(i.Op.AM, i.Op.Count)
	},
	IsaBra: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBra(i.PC+2, i.Op.Disp)
	},
	IsaBset: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBset(i.Op.AM, i.Op.Count)
	},
	IsaBsr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBsr(i.PC+2, i.Op.Disp)
	},
	IsaBtst: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeBtst(i.Op.AM, i.Op.Count)
	},
	IsaChk: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeChk(i.Op.Rx, i.Op.AM)
	},
	IsaClr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeClr(i.Op.Size, i.Op.AM)
	},
	IsaCmp: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeCmp(i.Op.Rx, i.Op.Size, i.Op.AM)
	},
	IsaCmpa: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeCmpa(i.Op.Rx, i.Op.Size, i.Op.AM)
	},
	IsaCmpi: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeCmpi(i.Op.Size, i.Op.AM, i.Op.Imm)
	},
	IsaCmpm: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeCmpm(i.Op.Rx, i.Op.Size, i.Op.Ry)
	},
	IsaDbcc: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeDbcc(i.PC+2, i.Op.Cond, i.Op.Ry, i.Op.Disp)
	},
	IsaDivs: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeDivs(i.Op.Rx, i.Op.AM)
	},
	IsaDivu: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeDivu(i.Op.Rx, i.Op.AM)
	},
	IsaEor: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeEor(i.Op.Rx, i.Op.Size, i.Op.AM)
	},
	IsaEori: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeEori(i.Op.Size, i.Op.AM, i.Op.Imm)
	},
	IsaEoriccr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeEoriccr(uint16(i.Op.Imm))
	},
	IsaEorisr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeEorisr(uint16(i.Op.Imm))
	},
	IsaExg: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeExg(i.Op.Rx, i.Op.Dir, i.Op.Ry)
	},
	IsaExt: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeExt(i.Op.Count, i.Op.Ry)
	},
	IsaIllegal: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeIllegal()
	},
	IsaJmp: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeJmp(i.Op.AM)
	},
	IsaJsr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeJsr(i.Op.AM)
	},
	IsaLea: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeLea(i.Op.Rx, i.Op.AM)
	},
	IsaLink: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeLink(i.Op.Ry, i.Op.Disp)
	},
	IsaLsm: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeLsm(i.Op.Dir, i.Op.AM)
	},
	IsaLsr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeLsr(i.Op.Count, i.Op.Dir, i.Op.Size, i.Op.IR, i.Op.Ry)
	},
	IsaMove: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMove(i.Op.Size, i.Op.AM, i.Op.Src)
	},
	IsaMovea: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMovea(i.Op.Size, i.Op.Rx, i.Op.AM)
	},
	IsaMoveccr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMoveccr(i.Op.AM)
	},
	IsaMovefsr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMovefsr(i.Op.AM)
	},
	IsaMovesr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMovesr(i.Op.AM)
	},
	IsaMoveusp: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMoveusp(i.Op.Dir, i.Op.Ry)
	},
	IsaMovem: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMovem(i.Op.Dir, i.Op.Size, i.Op.AM, i.Op.List)
	},
	IsaMovep: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMovep(i.Op.Rx, i.Op.Dir, i.Op.Size, i.Op.Ry, i.Op.Disp)
	},
	IsaMoveq: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMoveq(i.Op.Rx, i.Op.Data)
	},
	IsaMuls: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMuls(i.Op.Rx, i.Op.AM)
	},
	IsaMulu: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeMulu(i.Op.Rx, i.Op.AM)
	},
	IsaNbcd: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeNbcd(i.Op.AM)
	},
	IsaNeg: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeNeg(i.Op.Size, i.Op.AM)
	},
	IsaNegx: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeNegx(i.Op.Size, i.Op.AM)
	},
	IsaNop: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeNop()
	},
	IsaNot: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeNot(i.Op.Size, i.Op.AM)
	},
	IsaOr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeOr(i.Op.Rx, i.Op.Dir, i.Op.Size, i.Op.AM)
	},
	IsaOri: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeOri(i.Op.Size, i.Op.AM, i.Op.Imm)
	},
	IsaOriccr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeOriccr(uint16(i.Op.Imm))
	},
	IsaOrisr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeOrisr(uint16(i.Op.Imm))
	},
	IsaPea: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executePea(i.Op.AM)
	},
	IsaReset: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeReset()
	},
	IsaRom: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRom(i.Op.Dir, i.Op.AM)
	},
	IsaRor: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRor(i.Op.Count, i.Op.Dir, i.Op.Size, i.Op.IR, i.Op.Ry)
	},
	IsaRoxm: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRoxm(i.Op.Dir, i.Op.AM)
	},
	IsaRoxr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRoxr(i.Op.Count, i.Op.Dir, i.Op.Size, i.Op.IR, i.Op.Ry)
	},
	IsaRte: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRte()
	},
	IsaRtr: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRtr()
	},
	IsaRts: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeRts()
	},
	IsaSbcd: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSbcd(i.Op.Rx, i.Op.Dir, i.Op.Ry)
	},
	IsaScc: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeScc(i.Op.Cond, i.Op.AM)
	},
	IsaStop: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeStop(uint16(i.Op.Imm))
	},
	IsaSub: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSub(i.Op.Rx, i.Op.Dir, i.Op.Size, i.Op.AM)
	},
	IsaSuba: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSuba(i.Op.Rx, i.Op.Size, i.Op.AM)
	},
	IsaSubi: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSubi(i.Op.Size, i.Op.AM, i.Op.Imm)
	},
	IsaSubq: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSubq(i.Op.Count, i.Op.Size, i.Op.AM)
	},
	IsaSubx: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSubx(i.Op.Rx, i.Op.Size, i.Op.Dir, i.Op.Ry)
	},
	IsaSwap: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeSwap(i.Op.Ry)
	},
	IsaTas: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeTas(i.Op.AM)
	},
	IsaTrap: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeTrap(i.Op.Vector)
	},
	IsaTrapv: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeTrapv()
	},
	IsaTst: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeTst(i.Op.Size, i.Op.AM)
	},
	IsaUnlk: func(c *CPU, i *Instruction) (int, Fault) {
		return c.executeUnlk(i.Op.Ry)
	},
}
