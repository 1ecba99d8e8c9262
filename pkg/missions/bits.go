package missions

// DecodeBits returns the labels of TypeTable whose position holds '1' in bits.
// Any other character is treated as not set and positions past the end of
// the table are ignored, so malformed input never fails.
func DecodeBits(bits string) []string {
	labels := []string{}
	for i := 0; i < len(bits) && i < len(TypeTable); i++ {
		if bits[i] == '1' {
			labels = append(labels, TypeTable[i])
		}
	}
	return labels
}

// TypeIndex returns the table position of label, or -1.
func TypeIndex(label string) int {
	for i, t := range TypeTable {
		if t == label {
			return i
		}
	}
	return -1
}
