// Package charset converts between the editor's byte lines and codepoints
// and classifies codepoints for display.
//
// Decoding is tolerant: a byte that does not start a valid UTF-8 sequence
// decodes as a single Latin-1 character, so every byte of a line is always
// displayable. Width classification uses go-runewidth for ordinary
// characters and a fixed table of zero-width ranges that attach to the
// preceding cell instead of occupying one of their own.
package charset
