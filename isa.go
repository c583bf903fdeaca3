package m68000

// Isa identifies the instruction class an opcode belongs to.
type Isa uint8

const (
	IsaUnknown Isa = iota
	IsaAbcd
	IsaAdd
	IsaAdda
	IsaAddi
	IsaAddq
	IsaAddx
	IsaAnd
	IsaAndi
	IsaAndiccr
	IsaAndisr
	IsaAsm
	IsaAsr
	IsaBcc
	IsaBchg
	IsaBclr
	IsaBra
	IsaBset
	IsaBsr
	IsaBtst
	IsaChk
	IsaClr
	IsaCmp
	IsaCmpa
	IsaCmpi
	IsaCmpm
	IsaDbcc
	IsaDivs
	IsaDivu
	IsaEor
	IsaEori
	IsaEoriccr
	IsaEorisr
	IsaExg
	IsaExt
	IsaIllegal
	IsaJmp
	IsaJsr
	IsaLea
	IsaLink
	IsaLsm
	IsaLsr
	IsaMove
	IsaMovea
	IsaMoveccr
	IsaMovefsr
	IsaMovesr
	IsaMoveusp
	IsaMovem
	IsaMovep
	IsaMoveq
	IsaMuls
	IsaMulu
	IsaNbcd
	IsaNeg
	IsaNegx
	IsaNop
	IsaNot
	IsaOr
	IsaOri
	IsaOriccr
	IsaOrisr
	IsaPea
	IsaReset
	IsaRom
	IsaRor
	IsaRoxm
	IsaRoxr
	IsaRte
	IsaRtr
	IsaRts
	IsaSbcd
	IsaScc
	IsaStop
	IsaSub
	IsaSuba
	IsaSubi
	IsaSubq
	IsaSubx
	IsaSwap
	IsaTas
	IsaTrap
	IsaTrapv
	IsaTst
	IsaUnlk

	isaCount
)

// IsaFromOpcode returns the instruction class of an opcode. Opcodes
// that match no instruction return IsaUnknown, which executes as an
// Illegal Instruction exception.
func IsaFromOpcode(opcode uint16) Isa {
	return decodeTable[opcode]
}

// isPrivileged reports whether the instruction may only execute in
// supervisor mode. A trace exception is not taken after these.
func (i Isa) isPrivileged() bool {
	switch i {
	case IsaAndisr, IsaEorisr, IsaMovesr, IsaMoveusp, IsaOrisr, IsaReset, IsaRte, IsaStop:
		return true
	}
	return false
}

// decodeTable maps each of the 65536 opcodes to its instruction class.
// It is filled at init time by expanding bit-pattern templates, where
// each run of identical letters is a field substituted with every value
// of the matching value set.
var decodeTable [65536]Isa

// Field value sets used by the templates. Names give the covered
// range; a double underscore marks a hole or an unusual set.
var (
	v0_1    = []uint16{0, 1}
	v0_2    = []uint16{0, 1, 2}
	v0__2_6 = []uint16{0, 2, 3, 4, 5, 6}
	v0_3    = []uint16{0, 1, 2, 3}
	v0_4    = []uint16{0, 1, 2, 3, 4}
	v0_6    = []uint16{0, 1, 2, 3, 4, 5, 6}
	v0_7    = []uint16{0, 1, 2, 3, 4, 5, 6, 7}
	v0_15   = []uint16{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	v1_2    = []uint16{1, 2}
	v1_3    = []uint16{1, 2, 3}
	v2_3    = []uint16{2, 3}
	v2__5_6 = []uint16{2, 5, 6}
	v2_6    = []uint16{2, 3, 4, 5, 6}
	v2_15   = []uint16{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	v4_6    = []uint16{4, 5, 6}
	v4_7    = []uint16{4, 5, 6, 7}
	v8_9_17 = []uint16{8, 9, 17}
	vByte   = byteValues()
)

func byteValues() []uint16 {
	v := make([]uint16, 256)
	for i := range v {
		v[i] = uint16(i)
	}
	return v
}

// generate expands the first variable field of the pattern with every
// value of values[0], recursing until all fields are bound, then
// stores isa at the resulting opcode.
func generate(pattern string, values [][]uint16, isa Isa) {
	pos, length := -1, 0
	for i := 0; i < 16; {
		ch := pattern[i]
		if ch != '0' && ch != '1' {
			pos = i
			for i < 16 && pattern[i] == ch {
				length++
				i++
			}
			break
		}
		i++
	}

	if pos < 0 {
		var opcode uint16
		for i := 0; i < 16; i++ {
			opcode <<= 1
			if pattern[i] == '1' {
				opcode |= 1
			}
		}
		decodeTable[opcode] = isa
		return
	}

	for _, v := range values[0] {
		bound := []byte(pattern)
		for i := 0; i < length; i++ {
			if v&(1<<(length-1-i)) != 0 {
				bound[pos+i] = '1'
			} else {
				bound[pos+i] = '0'
			}
		}
		generate(string(bound), values[1:], isa)
	}
}

func init() {
	generate("1100aaa10000bccc", [][]uint16{v0_7, v0_1, v0_7}, IsaAbcd)

	generate("1101aaabbbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaAdd)
	generate("1101aaabbb001ddd", [][]uint16{v0_7, v1_2, v0_7}, IsaAdd)
	generate("1101aaabbb111ddd", [][]uint16{v0_7, v0_2, v0_4}, IsaAdd)
	generate("1101aaabbbcccddd", [][]uint16{v0_7, v4_6, v2_6, v0_7}, IsaAdd)
	generate("1101aaabbb111ddd", [][]uint16{v0_7, v4_6, v0_1}, IsaAdd)

	generate("1101aaab11cccddd", [][]uint16{v0_7, v0_1, v0_6, v0_7}, IsaAdda)
	generate("1101aaab11111ddd", [][]uint16{v0_7, v0_1, v0_4}, IsaAdda)

	generate("00000110aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaAddi)
	generate("00000110aa111ccc", [][]uint16{v0_2, v0_1}, IsaAddi)

	generate("0101aaa0bbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaAddq)
	generate("0101aaa0bb111ddd", [][]uint16{v0_7, v0_2, v0_1}, IsaAddq)
	generate("0101aaa0bb001ddd", [][]uint16{v0_7, v1_2, v0_7}, IsaAddq)

	generate("1101aaa1bb00cddd", [][]uint16{v0_7, v0_2, v0_1, v0_7}, IsaAddx)

	generate("1100aaa0bbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaAnd)
	generate("1100aaa0bb111ddd", [][]uint16{v0_7, v0_2, v0_4}, IsaAnd)
	generate("1100aaa1bbcccddd", [][]uint16{v0_7, v0_2, v2_6, v0_7}, IsaAnd)
	generate("1100aaa1bb111ddd", [][]uint16{v0_7, v0_2, v0_1}, IsaAnd)

	generate("00000010aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaAndi)
	generate("00000010aa111ccc", [][]uint16{v0_2, v0_1}, IsaAndi)

	decodeTable[0x023C] = IsaAndiccr
	decodeTable[0x027C] = IsaAndisr

	generate("1110000a11bbbccc", [][]uint16{v0_1, v2_6, v0_7}, IsaAsm)
	generate("1110000a11111ccc", [][]uint16{v0_1, v0_1}, IsaAsm)

	generate("1110aaabccd00eee", [][]uint16{v0_7, v0_1, v0_2, v0_1, v0_7}, IsaAsr)

	generate("0110aaaabbbbbbbb", [][]uint16{v2_15, vByte}, IsaBcc)

	generate("0000aaa101bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaBchg)
	generate("0000aaa101111ccc", [][]uint16{v0_7, v0_1}, IsaBchg)
	generate("0000100001aaabbb", [][]uint16{v0__2_6, v0_7}, IsaBchg)
	decodeTable[0x0878] = IsaBchg
	decodeTable[0x0879] = IsaBchg

	generate("0000aaa110bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaBclr)
	generate("0000aaa110111ccc", [][]uint16{v0_7, v0_1}, IsaBclr)
	generate("0000100010aaabbb", [][]uint16{v0__2_6, v0_7}, IsaBclr)
	decodeTable[0x08B8] = IsaBclr
	decodeTable[0x08B9] = IsaBclr

	generate("01100000aaaaaaaa", [][]uint16{vByte}, IsaBra)

	generate("0000aaa111bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaBset)
	generate("0000aaa111111ccc", [][]uint16{v0_7, v0_1}, IsaBset)
	generate("0000100011aaabbb", [][]uint16{v0__2_6, v0_7}, IsaBset)
	decodeTable[0x08F8] = IsaBset
	decodeTable[0x08F9] = IsaBset

	generate("01100001aaaaaaaa", [][]uint16{vByte}, IsaBsr)

	generate("0000aaa100bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaBtst)
	generate("0000aaa100111ccc", [][]uint16{v0_7, v0_4}, IsaBtst)
	generate("0000100000aaabbb", [][]uint16{v0__2_6, v0_7}, IsaBtst)
	decodeTable[0x0838] = IsaBtst
	decodeTable[0x0839] = IsaBtst
	decodeTable[0x083A] = IsaBtst
	decodeTable[0x083B] = IsaBtst

	generate("0100aaa110bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaChk)
	generate("0100aaa110111ccc", [][]uint16{v0_7, v0_4}, IsaChk)

	generate("01000010aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaClr)
	generate("01000010aa111ccc", [][]uint16{v0_2, v0_1}, IsaClr)

	generate("1011aaa000cccddd", [][]uint16{v0_7, v0__2_6, v0_7}, IsaCmp)
	generate("1011aaa000111ddd", [][]uint16{v0_7, v0_4}, IsaCmp)
	generate("1011aaa0bbcccddd", [][]uint16{v0_7, v1_2, v0_6, v0_7}, IsaCmp)
	generate("1011aaa0bb111ddd", [][]uint16{v0_7, v1_2, v0_4}, IsaCmp)

	generate("1011aaab11cccddd", [][]uint16{v0_7, v0_1, v0_6, v0_7}, IsaCmpa)
	generate("1011aaab11111ddd", [][]uint16{v0_7, v0_1, v0_4}, IsaCmpa)

	generate("00001100aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaCmpi)
	generate("00001100aa111ccc", [][]uint16{v0_2, v0_1}, IsaCmpi)

	generate("1011aaa1bb001ccc", [][]uint16{v0_7, v0_2, v0_7}, IsaCmpm)

	generate("0101aaaa11001bbb", [][]uint16{v0_15, v0_7}, IsaDbcc)

	generate("1000aaa111bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaDivs)
	generate("1000aaa111111ccc", [][]uint16{v0_7, v0_4}, IsaDivs)

	generate("1000aaa011bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaDivu)
	generate("1000aaa011111ccc", [][]uint16{v0_7, v0_4}, IsaDivu)

	generate("1011aaa1bbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaEor)
	generate("1011aaa1bb111ddd", [][]uint16{v0_7, v0_2, v0_1}, IsaEor)

	generate("00001010aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaEori)
	generate("00001010aa111ccc", [][]uint16{v0_2, v0_1}, IsaEori)

	decodeTable[0x0A3C] = IsaEoriccr
	decodeTable[0x0A7C] = IsaEorisr

	generate("1100aaa1bbbbbccc", [][]uint16{v0_7, v8_9_17, v0_7}, IsaExg)

	generate("0100100aaa000bbb", [][]uint16{v2_3, v0_7}, IsaExt)

	decodeTable[0x4AFC] = IsaIllegal

	generate("0100111011aaabbb", [][]uint16{v2__5_6, v0_7}, IsaJmp)
	generate("0100111011111bbb", [][]uint16{v0_3}, IsaJmp)

	generate("0100111010aaabbb", [][]uint16{v2__5_6, v0_7}, IsaJsr)
	generate("0100111010111bbb", [][]uint16{v0_3}, IsaJsr)

	generate("0100aaa111bbbccc", [][]uint16{v0_7, v2__5_6, v0_7}, IsaLea)
	generate("0100aaa111111ccc", [][]uint16{v0_7, v0_3}, IsaLea)

	generate("0100111001010aaa", [][]uint16{v0_7}, IsaLink)

	generate("1110001a11bbbccc", [][]uint16{v0_1, v2_6, v0_7}, IsaLsm)
	generate("1110001a11111ccc", [][]uint16{v0_1, v0_1}, IsaLsm)

	generate("1110aaabccd01eee", [][]uint16{v0_7, v0_1, v0_2, v0_1, v0_7}, IsaLsr)

	generate("00aabbbcccdddeee", [][]uint16{v1_3, v0_7, v0__2_6, v0__2_6, v0_7}, IsaMove)
	generate("00aabbb111dddeee", [][]uint16{v1_3, v0_1, v0__2_6, v0_7}, IsaMove)
	generate("00aabbbccc111eee", [][]uint16{v1_3, v0_7, v0__2_6, v0_4}, IsaMove)
	generate("00aabbb111111eee", [][]uint16{v1_3, v0_1, v0_4}, IsaMove)
	generate("00aabbbccc001eee", [][]uint16{v2_3, v0_7, v0__2_6, v0_7}, IsaMove)
	generate("00aabbb111001eee", [][]uint16{v2_3, v0_1, v0_7}, IsaMove)

	generate("001abbb001cccddd", [][]uint16{v0_1, v0_7, v0_6, v0_7}, IsaMovea)
	generate("001abbb001111ddd", [][]uint16{v0_1, v0_7, v0_4}, IsaMovea)

	generate("0100010011aaabbb", [][]uint16{v0__2_6, v0_7}, IsaMoveccr)
	generate("0100010011111bbb", [][]uint16{v0_4}, IsaMoveccr)

	generate("0100000011aaabbb", [][]uint16{v0__2_6, v0_7}, IsaMovefsr)
	decodeTable[0x40F8] = IsaMovefsr
	decodeTable[0x40F9] = IsaMovefsr

	generate("0100011011aaabbb", [][]uint16{v0__2_6, v0_7}, IsaMovesr)
	generate("0100011011111bbb", [][]uint16{v0_4}, IsaMovesr)

	generate("010011100110abbb", [][]uint16{v0_1, v0_7}, IsaMoveusp)

	generate("010010001bcccddd", [][]uint16{v0_1, v2_6, v0_7}, IsaMovem)
	generate("010010001b111ddd", [][]uint16{v0_1, v0_1}, IsaMovem)
	generate("010011001bcccddd", [][]uint16{v0_1, v2_6, v0_7}, IsaMovem)
	generate("010011001b111ddd", [][]uint16{v0_1, v0_3}, IsaMovem)

	generate("0000aaabbb001ccc", [][]uint16{v0_7, v4_7, v0_7}, IsaMovep)

	generate("0111aaa0bbbbbbbb", [][]uint16{v0_7, vByte}, IsaMoveq)

	generate("1100aaa111bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaMuls)
	generate("1100aaa111111ccc", [][]uint16{v0_7, v0_4}, IsaMuls)

	generate("1100aaa011bbbccc", [][]uint16{v0_7, v0__2_6, v0_7}, IsaMulu)
	generate("1100aaa011111ccc", [][]uint16{v0_7, v0_4}, IsaMulu)

	generate("0100100000aaabbb", [][]uint16{v0__2_6, v0_7}, IsaNbcd)
	decodeTable[0x4838] = IsaNbcd
	decodeTable[0x4839] = IsaNbcd

	generate("01000100aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaNeg)
	generate("01000100aa111ccc", [][]uint16{v0_2, v0_1}, IsaNeg)

	generate("01000000aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaNegx)
	generate("01000000aa111ccc", [][]uint16{v0_2, v0_1}, IsaNegx)

	decodeTable[0x4E71] = IsaNop

	generate("01000110aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaNot)
	generate("01000110aa111ccc", [][]uint16{v0_2, v0_1}, IsaNot)

	generate("1000aaa0bbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaOr)
	generate("1000aaa0bb111ddd", [][]uint16{v0_7, v0_2, v0_4}, IsaOr)
	generate("1000aaa1bbcccddd", [][]uint16{v0_7, v0_2, v2_6, v0_7}, IsaOr)
	generate("1000aaa1bb111ddd", [][]uint16{v0_7, v0_2, v0_1}, IsaOr)

	generate("00000000aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaOri)
	generate("00000000aa111ccc", [][]uint16{v0_2, v0_1}, IsaOri)

	decodeTable[0x003C] = IsaOriccr
	decodeTable[0x007C] = IsaOrisr

	generate("0100100001aaabbb", [][]uint16{v2__5_6, v0_7}, IsaPea)
	generate("0100100001111bbb", [][]uint16{v0_3}, IsaPea)

	decodeTable[0x4E70] = IsaReset

	generate("1110011a11bbbccc", [][]uint16{v0_1, v2_6, v0_7}, IsaRom)
	generate("1110011a11111ccc", [][]uint16{v0_1, v0_1}, IsaRom)

	generate("1110aaabccd11eee", [][]uint16{v0_7, v0_1, v0_2, v0_1, v0_7}, IsaRor)

	generate("1110010a11bbbccc", [][]uint16{v0_1, v2_6, v0_7}, IsaRoxm)
	generate("1110010a11111ccc", [][]uint16{v0_1, v0_1}, IsaRoxm)

	generate("1110aaabccd10eee", [][]uint16{v0_7, v0_1, v0_2, v0_1, v0_7}, IsaRoxr)

	decodeTable[0x4E73] = IsaRte
	decodeTable[0x4E77] = IsaRtr
	decodeTable[0x4E75] = IsaRts

	generate("1000aaa10000bccc", [][]uint16{v0_7, v0_1, v0_7}, IsaSbcd)

	generate("0101aaaa11bbbccc", [][]uint16{v0_15, v0__2_6, v0_7}, IsaScc)
	generate("0101aaaa11111ccc", [][]uint16{v0_15, v0_1}, IsaScc)

	decodeTable[0x4E72] = IsaStop

	generate("1001aaabbbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaSub)
	generate("1001aaabbb001ddd", [][]uint16{v0_7, v1_2, v0_7}, IsaSub)
	generate("1001aaabbb111ddd", [][]uint16{v0_7, v0_2, v0_4}, IsaSub)
	generate("1001aaabbbcccddd", [][]uint16{v0_7, v4_6, v2_6, v0_7}, IsaSub)
	generate("1001aaabbb111ddd", [][]uint16{v0_7, v4_6, v0_1}, IsaSub)

	generate("1001aaab11cccddd", [][]uint16{v0_7, v0_1, v0_6, v0_7}, IsaSuba)
	generate("1001aaab11111ddd", [][]uint16{v0_7, v0_1, v0_4}, IsaSuba)

	generate("00000100aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaSubi)
	generate("00000100aa111ccc", [][]uint16{v0_2, v0_1}, IsaSubi)

	generate("0101aaa1bbcccddd", [][]uint16{v0_7, v0_2, v0__2_6, v0_7}, IsaSubq)
	generate("0101aaa1bb111ddd", [][]uint16{v0_7, v0_2, v0_1}, IsaSubq)
	generate("0101aaa1bb001ddd", [][]uint16{v0_7, v1_2, v0_7}, IsaSubq)

	generate("1001aaa1bb00cddd", [][]uint16{v0_7, v0_2, v0_1, v0_7}, IsaSubx)

	generate("0100100001000aaa", [][]uint16{v0_7}, IsaSwap)

	generate("0100101011aaabbb", [][]uint16{v0__2_6, v0_7}, IsaTas)
	decodeTable[0x4AF8] = IsaTas
	decodeTable[0x4AF9] = IsaTas

	generate("010011100100aaaa", [][]uint16{v0_15}, IsaTrap)

	decodeTable[0x4E76] = IsaTrapv

	generate("01001010aabbbccc", [][]uint16{v0_2, v0__2_6, v0_7}, IsaTst)
	generate("01001010aa111ccc", [][]uint16{v0_2, v0_1}, IsaTst)

	generate("0100111001011aaa", [][]uint16{v0_7}, IsaUnlk)
}
