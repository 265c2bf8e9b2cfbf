package signals

import "strings"

// Encode serializes a signal as stored in the state record.
func Encode(s Signal) string {
	if s.Kind == KindComposite {
		return strings.TrimSpace(s.Month) + "," + strings.TrimSpace(s.Year)
	}
	return strings.TrimSpace(s.Value)
}

// Decode parses stored state content for the given kind. The boolean is false
// when the content represents no record at all.
//
// Blank composite content counts as absent. Blank scalar content is a valid
// record holding an empty value: a first run that found no link still stores
// an empty file.
func Decode(kind Kind, data string) (Signal, bool) {
	data = strings.TrimSpace(data)
	switch kind {
	case KindComposite:
		if data == "" {
			return Signal{}, false
		}
		parts := strings.Split(data, ",")
		var year string
		if len(parts) > 1 {
			year = parts[1]
		}
		return Composite(parts[0], year), true
	default:
		return Scalar(data), true
	}
}
