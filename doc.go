// Package tprint renders inline markup as word-wrapped ANSI terminal text.
//
// Markup is plain text with bracketed instructions. Conversion runs in two
// passes: a scanner turns the text into a stream of tagged characters and
// resolves style and color instructions to SGR sequences, then a layout pass
// packs the stream greedily into lines of a fixed width.
//
// Instructions:
//   - [n] forces a line break
//   - [b] [i] [u] [s] toggle bold, italic, underline and strikethrough
//   - [ixx] adds xx to the indent of following lines; [i00] resets it
//   - [txx] inserts a tab of xx spaces that is never split across lines
//   - [c-name] or [c-r;g;b] sets the text color; [c-none] clears it
//
// Bracketed text that is not an instruction is printed as typed.
//
// Example:
//
//	lines, err := tprint.Convert("[b]Status:[b] [c-green]ready[c-none]", tprint.Format{Width: 60})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, line := range lines {
//		fmt.Println(line)
//	}
//
// Printer wraps the same conversion with terminal output, prompts that
// validate answers, and a loading indicator that runs in the background.
package tprint
