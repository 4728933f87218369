package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// asciiArtTpl returns the ASCII art banner, with a %s verb for the binary
// name.
func asciiArtTpl() string {
	asciiArt := `
   _____      ______ ____    __    _ __
  / ___/ | /| / / __// __ \  / /   (_) /____
  \__ \| |/ |/ /\ \ / / / / / /   / / __/ _ \
 ___/ /|__/|__/___// /_/ / / /___/ / /_/  __/
/____/           \___\_\/_____/_/\__/\___/
%s ` + Version

	asciiArt = asciiArt[1:]                          // This just removes the first newline character
	asciiArt = colorCyanBold + asciiArt + colorReset // Add color to the ASCII art

	return asciiArt
}

// ShellVersion returns the banner of the swsqlite shell.
func ShellVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Shell")
}

// BenchVersion returns the banner of swsqlitebench.
func BenchVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Bench")
}
