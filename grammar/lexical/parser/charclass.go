package parser

// POSIX character classes recognized inside bracket expressions. Each
// class expands to the listed half-open ranges.
type charClass struct {
	name   string
	ranges []charRange
}

func rangesOfString(s string) []charRange {
	var rs []charRange
	for i := 0; i < len(s); i++ {
		rs = append(rs, charRange{from: s[i], to: s[i] + 1})
	}
	return rs
}

var (
	classLower  = []charRange{{from: 'a', to: 'z' + 1}}
	classUpper  = []charRange{{from: 'A', to: 'Z' + 1}}
	classDigit  = []charRange{{from: '0', to: '9' + 1}}
	classAlpha  = append(append([]charRange{}, classLower...), classUpper...)
	classAlnum  = append(append([]charRange{}, classAlpha...), classDigit...)
	classWord   = append(append([]charRange{}, classAlnum...), charRange{from: '_', to: '_' + 1})
	classBlank  = rangesOfString(" \t")
	classCntrl  = []charRange{{from: 0x01, to: 0x20}, {from: 0x7f, to: 0x80}}
	classGraph  = []charRange{{from: 0x21, to: 0x7f}}
	classPrint  = []charRange{{from: 0x20, to: 0x7f}}
	classPunct  = rangesOfString("-!\"#$%&'()*+,./:;<=>?@[\\]_`{|}~")
	classSpace  = rangesOfString(" \t\r\n")
	classXDigit = rangesOfString("0123456789abcdefABCDEF")
)

var charClasses = []charClass{
	{name: "[:alnum:]", ranges: classAlnum},
	{name: "[:word:]", ranges: classWord},
	{name: "[:alpha:]", ranges: classAlpha},
	{name: "[:blank:]", ranges: classBlank},
	{name: "[:cntrl:]", ranges: classCntrl},
	{name: "[:digit:]", ranges: classDigit},
	{name: "[:graph:]", ranges: classGraph},
	{name: "[:lower:]", ranges: classLower},
	{name: "[:print:]", ranges: classPrint},
	{name: "[:punct:]", ranges: classPunct},
	{name: "[:space:]", ranges: classSpace},
	{name: "[:upper:]", ranges: classUpper},
	{name: "[:xdigit:]", ranges: classXDigit},
}
