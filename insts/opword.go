package insts

// OpWordInfo is the classifier entry for one leading instruction word.
type OpWordInfo struct {
	Pairability Pairability
	Family      string
}

type opWordRule struct {
	mask, match uint16
	info        OpWordInfo
}

func rule(mask, match uint16, p Pairability, family string) opWordRule {
	return opWordRule{mask: mask, match: match, info: OpWordInfo{Pairability: p, Family: family}}
}

// opWordRules classify leading words into the MC68060 superscalar classes.
// The first matching rule wins.
var opWordRules = []opWordRule{
	// Line 0
	rule(0xFFFF, 0x003C, POEPOnly, "ori to ccr"),
	rule(0xFFFF, 0x007C, POEPOnly, "ori to sr"),
	rule(0xFFFF, 0x023C, POEPOnly, "andi to ccr"),
	rule(0xFFFF, 0x027C, POEPOnly, "andi to sr"),
	rule(0xFFFF, 0x0A3C, POEPOnly, "eori to ccr"),
	rule(0xFFFF, 0x0A7C, POEPOnly, "eori to sr"),
	rule(0xFFFF, 0x0CFC, POEPOnly, "cas2"),
	rule(0xFFFF, 0x0EFC, POEPOnly, "cas2"),
	rule(0xF138, 0x0108, POEPOnly, "movep"),
	rule(0xF9C0, 0x00C0, POEPOnly, "cmp2/chk2"),
	rule(0xFF00, 0x0800, POEPUntilLast, "bit static"),
	rule(0xF9C0, 0x08C0, POEPOnly, "cas"),
	rule(0xFF00, 0x0E00, POEPOnly, "moves"),
	rule(0xF100, 0x0100, POEPUntilLast, "bit dynamic"),
	rule(0xF1C0, 0x00C0, PairabilityUnknown, "line 0"),
	rule(0xFF00, 0x0000, POEPOrSOEP, "ori"),
	rule(0xFF00, 0x0200, POEPOrSOEP, "andi"),
	rule(0xFF00, 0x0400, POEPOrSOEP, "subi"),
	rule(0xFF00, 0x0600, POEPOrSOEP, "addi"),
	rule(0xFF00, 0x0A00, POEPOrSOEP, "eori"),
	rule(0xFF00, 0x0C00, POEPOrSOEP, "cmpi"),

	// Lines 1-3
	rule(0xF000, 0x1000, POEPOrSOEP, "move.b"),
	rule(0xF000, 0x2000, POEPOrSOEP, "move.l"),
	rule(0xF000, 0x3000, POEPOrSOEP, "move.w"),

	// Line 4
	rule(0xFFFF, 0x4AFC, POEPOnly, "illegal"),
	rule(0xFFFF, 0x4E70, POEPOnly, "reset"),
	rule(0xFFFF, 0x4E71, POEPOnly, "nop"),
	rule(0xFFFF, 0x4E72, POEPOnly, "stop"),
	rule(0xFFFF, 0x4E73, POEPOnly, "rte"),
	rule(0xFFFF, 0x4E74, POEPOnly, "rtd"),
	rule(0xFFFF, 0x4E75, POEPOnly, "rts"),
	rule(0xFFFF, 0x4E76, POEPOnly, "trapv"),
	rule(0xFFFF, 0x4E77, POEPOnly, "rtr"),
	rule(0xFFFE, 0x4E7A, POEPOnly, "movec"),
	rule(0xFFF0, 0x4E40, POEPOnly, "trap"),
	rule(0xFFF8, 0x4E50, POEPUntilLast, "link"),
	rule(0xFFF8, 0x4E58, POEPUntilLast, "unlk"),
	rule(0xFFF0, 0x4E60, POEPOnly, "move usp"),
	rule(0xFFC0, 0x4E80, POEPOnly, "jsr"),
	rule(0xFFC0, 0x4EC0, POEPOnly, "jmp"),
	rule(0xFFF8, 0x4808, POEPUntilLast, "link.l"),
	rule(0xFFF8, 0x4848, POEPOnly, "bkpt"),
	rule(0xFFF8, 0x4840, POEPOrSOEP, "swap"),
	rule(0xFFC0, 0x4840, POEPUntilLast, "pea"),
	rule(0xFFF8, 0x4880, POEPOrSOEP, "ext.w"),
	rule(0xFFF8, 0x48C0, POEPOrSOEP, "ext.l"),
	rule(0xFFF8, 0x49C0, POEPOrSOEP, "extb.l"),
	rule(0xFB80, 0x4880, POEPUntilLast, "movem"),
	rule(0xFFC0, 0x4C00, POEPOnly, "mul.l"),
	rule(0xFFC0, 0x4C40, POEPOnly, "div.l"),
	rule(0xFFC0, 0x4800, POEPOnly, "nbcd"),
	rule(0xFFC0, 0x4AC0, POEPOnly, "tas"),
	rule(0xFFC0, 0x40C0, POEPOnly, "move from sr"),
	rule(0xFFC0, 0x42C0, POEPOnly, "move from ccr"),
	rule(0xFFC0, 0x44C0, POEPOnly, "move to ccr"),
	rule(0xFFC0, 0x46C0, POEPOnly, "move to sr"),
	rule(0xFF00, 0x4000, POEPUntilLast, "negx"),
	rule(0xFF00, 0x4200, POEPOrSOEP, "clr"),
	rule(0xFF00, 0x4400, POEPOrSOEP, "neg"),
	rule(0xFF00, 0x4600, POEPOrSOEP, "not"),
	rule(0xFF00, 0x4A00, POEPOrSOEP, "tst"),
	rule(0xF1C0, 0x41C0, POEPOrSOEP, "lea"),
	rule(0xF140, 0x4100, POEPUntilLast, "chk"),

	// Line 5
	rule(0xF0F8, 0x50C8, POEPUntilLast, "dbcc"),
	rule(0xF0F8, 0x50F8, POEPOnly, "trapcc"),
	rule(0xF0C0, 0x50C0, POEPUntilLast, "scc"),
	rule(0xF100, 0x5000, POEPOrSOEP, "addq"),
	rule(0xF100, 0x5100, POEPOrSOEP, "subq"),

	// Line 6
	rule(0xFF00, 0x6100, POEPOnly, "bsr"),
	rule(0xFF00, 0x6000, POEPOrSOEP, "bra"),
	rule(0xF000, 0x6000, POEPOrSOEP, "bcc"),

	// Line 7
	rule(0xF100, 0x7000, POEPOrSOEP, "moveq"),

	// Line 8
	rule(0xF1C0, 0x80C0, POEPOnly, "divu.w"),
	rule(0xF1C0, 0x81C0, POEPOnly, "divs.w"),
	rule(0xF1F0, 0x8100, POEPUntilLast, "sbcd"),
	rule(0xF1F0, 0x8140, POEPOnly, "pack"),
	rule(0xF1F0, 0x8180, POEPOnly, "unpk"),
	rule(0xF000, 0x8000, POEPOrSOEP, "or"),

	// Line 9
	rule(0xF0C0, 0x90C0, POEPOrSOEP, "suba"),
	rule(0xF130, 0x9100, POEPUntilLast, "subx"),
	rule(0xF000, 0x9000, POEPOrSOEP, "sub"),

	// Line B
	rule(0xF0C0, 0xB0C0, POEPOrSOEP, "cmpa"),
	rule(0xF138, 0xB108, POEPUntilLast, "cmpm"),
	rule(0xF100, 0xB100, POEPOrSOEP, "eor"),
	rule(0xF000, 0xB000, POEPOrSOEP, "cmp"),

	// Line C
	rule(0xF1C0, 0xC0C0, POEPOnly, "mulu.w"),
	rule(0xF1C0, 0xC1C0, POEPOnly, "muls.w"),
	rule(0xF1F0, 0xC100, POEPUntilLast, "abcd"),
	rule(0xF1F8, 0xC140, POEPUntilLast, "exg"),
	rule(0xF1F8, 0xC148, POEPUntilLast, "exg"),
	rule(0xF1F8, 0xC188, POEPUntilLast, "exg"),
	rule(0xF000, 0xC000, POEPOrSOEP, "and"),

	// Line D
	rule(0xF0C0, 0xD0C0, POEPOrSOEP, "adda"),
	rule(0xF130, 0xD100, POEPUntilLast, "addx"),
	rule(0xF000, 0xD000, POEPOrSOEP, "add"),

	// Line E
	rule(0xF8C0, 0xE8C0, POEPOnly, "bitfield"),
	rule(0xFEC0, 0xE4C0, POEPUntilLast, "roxd memory"),
	rule(0xF8C0, 0xE0C0, POEPOrSOEP, "shift memory"),
	rule(0xF018, 0xE010, POEPUntilLast, "roxd"),
	rule(0xF000, 0xE000, POEPOrSOEP, "shift"),

	// Line F
	rule(0xFFC0, 0xF200, POEPOnly, "fpu"),
	rule(0xFF80, 0xF280, POEPOnly, "fbcc"),
	rule(0xFFC0, 0xF240, POEPOnly, "fscc"),
	rule(0xFF80, 0xF300, POEPOnly, "fsave/frestore"),
	rule(0xFF00, 0xF400, POEPOnly, "cinv/cpush"),
	rule(0xFF00, 0xF500, POEPOnly, "pflush"),
	rule(0xFFC0, 0xF600, POEPOnly, "move16"),
}

var opWordTable [1 << 16]OpWordInfo

func init() {
	for w := range opWordTable {
		for _, r := range opWordRules {
			if uint16(w)&r.mask == r.match {
				opWordTable[w] = r.info
				break
			}
		}
	}
}

// Classify returns the classifier entry for a leading instruction word.
// Unrecognised words classify as PairabilityUnknown with an empty family.
func Classify(word uint16) OpWordInfo {
	return opWordTable[word]
}
