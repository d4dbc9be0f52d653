package ffmpeg

import "strconv"

// Build constructs the complete ffmpeg argument slice (binary first) for one
// job. The output is always overwritten (-y) and stdin is never read, so a
// batch cannot stall on an overwrite prompt.
//
// With verbose set, ffmpeg logs at info level with periodic stats;
// otherwise only errors are printed, which keeps the captured stderr short
// enough to show in the summary.
func Build(bin string, s Settings, input, output string, verbose bool) []string {
	args := make([]string, 0, 24)

	// --- Preamble ---
	args = append(args, bin, "-hide_banner", "-nostdin", "-y")
	if verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input ---
	args = append(args, "-i", input)

	// --- Video codec ---
	args = append(args,
		"-c:v", s.VideoCodec,
		"-preset", s.Preset,
		"-crf", strconv.Itoa(s.CRF),
	)

	// --- Audio codec ---
	args = append(args,
		"-c:a", s.AudioCodec,
		"-b:a", s.AudioBitrate,
	)

	// --- Output ---
	args = append(args, output)

	return args
}
