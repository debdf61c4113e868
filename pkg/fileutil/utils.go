package fileutil

import (
	"io"
	"os"
)

func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsBinaryFile sniffs the first 512 bytes for NUL bytes and a high ratio of
// non-printable characters, tolerating a UTF-8 BOM and multibyte sequences.
func IsBinaryFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false, err
	}

	start := 0
	if n >= 3 && buffer[0] == 0xEF && buffer[1] == 0xBB && buffer[2] == 0xBF {
		start = 3
	}

	for i := start; i < n; i++ {
		if buffer[i] == 0 {
			return true, nil
		}
	}

	nonPrintable := 0
	totalChecked := 0
	for i := start; i < n; i++ {
		b := buffer[i]
		totalChecked++

		if b < 32 && b != 9 && b != 10 && b != 13 {
			nonPrintable++
		}
		if b > 127 {
			if (b & 0xC0) != 0x80 {
				if (b&0xE0) == 0xC0 ||
					(b&0xF0) == 0xE0 ||
					(b&0xF8) == 0xF0 {
				} else {
					nonPrintable++
				}
			}
		}
	}

	if totalChecked > 0 && float64(nonPrintable)/float64(totalChecked) > 0.3 {
		return true, nil
	}

	return false, nil
}
