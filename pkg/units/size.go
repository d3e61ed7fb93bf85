package units

import "fmt"

var (
	decimalAbbrs = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	binaryAbbrs  = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}
)

func scale(size float64, base float64, abbrs []string) (float64, string) {
	i := 0
	for size >= base && i < len(abbrs)-1 {
		size = size / base
		i++
	}
	return size, abbrs[i]
}

// HumanSize formats bytes with decimal units, e.g. 4.66GB.
func HumanSize(size int64) string {
	value, unit := scale(float64(size), 1000.0, decimalAbbrs)
	return fmt.Sprintf("%.3g%s", value, unit)
}

// BytesSize formats bytes with binary units, e.g. 4.34GiB.
func BytesSize(size int64) string {
	value, unit := scale(float64(size), 1024.0, binaryAbbrs)
	return fmt.Sprintf("%.3g%s", value, unit)
}
