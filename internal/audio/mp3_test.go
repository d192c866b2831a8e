package audio

import "bytes"

// mp3Frames builds a silent MPEG-1 Layer III stream (128kbps, 44.1kHz) of n
// frames, each 1152 samples long.
func mp3Frames(n int) []byte {
	const frameSize = 417 // 144 * 128000 / 44100
	var buf bytes.Buffer
	frame := make([]byte, frameSize)
	frame[0], frame[1], frame[2], frame[3] = 0xFF, 0xFB, 0x90, 0x00
	for i := 0; i < n; i++ {
		buf.Write(frame)
	}
	return buf.Bytes()
}
