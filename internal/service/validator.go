package service

import (
	"strings"
)

const (
	cpfLen  = 11
	cnpjLen = 14
	cepLen  = 8
)

// Digits strips everything but 0-9. Formatting then stripping round-trips
// the digit sequence up to the canonical truncation.
func Digits(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// FormatCPF masks a CPF as 000.000.000-00. Partial input is masked as far
// as it goes; excess digits are dropped. Idempotent.
func FormatCPF(s string) string {
	return mask(Digits(s), cpfLen, map[int]string{3: ".", 6: ".", 9: "-"})
}

// FormatCNPJ masks a CNPJ as 00.000.000/0000-00.
func FormatCNPJ(s string) string {
	return mask(Digits(s), cnpjLen, map[int]string{2: ".", 5: ".", 8: "/", 12: "-"})
}

// FormatCEP masks a CEP as 00000-000.
func FormatCEP(s string) string {
	return mask(Digits(s), cepLen, map[int]string{5: "-"})
}

// FormatPhone masks a phone as (00) 0000-0000 or (00) 00000-0000 depending
// on whether the number carries the mobile ninth digit.
func FormatPhone(s string) string {
	digits := Digits(s)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	if len(digits) > 10 {
		return mask(digits, 11, map[int]string{2: ") ", 7: "-"}, "(")
	}

	return mask(digits, 10, map[int]string{2: ") ", 6: "-"}, "(")
}

func mask(digits string, maxLen int, separators map[int]string, prefix ...string) string {
	if len(digits) > maxLen {
		digits = digits[:maxLen]
	}

	var b strings.Builder

	if len(prefix) > 0 && len(digits) > 0 {
		b.WriteString(prefix[0])
	}

	for i, r := range digits {
		if sep, ok := separators[i]; ok && i > 0 {
			b.WriteString(sep)
		}

		b.WriteRune(r)
	}

	return b.String()
}

// ValidCPF verifies the two check digits of an 11-digit CPF with the
// weighted modulo-11 algorithm. A string of one repeated digit is rejected
// even though the arithmetic would accept it.
func ValidCPF(s string) bool {
	digits := Digits(s)
	if len(digits) != cpfLen {
		return false
	}

	if repeatedDigits(digits) {
		return false
	}

	first := checkDigit(digits[:9], 10)
	if first != int(digits[9]-'0') {
		return false
	}

	second := checkDigit(digits[:10], 11)

	return second == int(digits[10]-'0')
}

// ValidCNPJ verifies the two check digits of a 14-digit CNPJ, same repeated
// digit rejection as CPF.
func ValidCNPJ(s string) bool {
	digits := Digits(s)
	if len(digits) != cnpjLen {
		return false
	}

	if repeatedDigits(digits) {
		return false
	}

	first := cnpjCheckDigit(digits[:12])
	if first != int(digits[12]-'0') {
		return false
	}

	second := cnpjCheckDigit(digits[:13])

	return second == int(digits[13]-'0')
}

// ValidCEP reports whether the input holds exactly 8 digits.
func ValidCEP(s string) bool {
	return len(Digits(s)) == cepLen
}

// ValidPhone accepts 10 digits (landline) or 11 (mobile).
func ValidPhone(s string) bool {
	n := len(Digits(s))
	return n == 10 || n == 11
}

func repeatedDigits(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}

	return true
}

// checkDigit computes a CPF check digit: weights run from startWeight down
// to 2, the digit is 11 minus the sum modulo 11, folded to 0 when >= 10.
func checkDigit(digits string, startWeight int) int {
	sum := 0
	for i, r := range digits {
		sum += int(r-'0') * (startWeight - i)
	}

	d := 11 - sum%11
	if d >= 10 {
		return 0
	}

	return d
}

// cnpjCheckDigit uses the CNPJ weight cycle 2..9 applied right to left.
func cnpjCheckDigit(digits string) int {
	weight := 2
	sum := 0

	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight

		weight++
		if weight > 9 {
			weight = 2
		}
	}

	d := 11 - sum%11
	if d >= 10 {
		return 0
	}

	return d
}
