package buildver

import "fmt"

// Rendering names one of the textual shapes derived from a State. Every
// artifact declares which shape it expects; all three share the same
// underlying counter and differ only in zero padding.
type Rendering string

const (
	// RenderBare is "YEAR.BUILD", the canonical form used in the version
	// constant, commit messages and anywhere the counter is shown.
	RenderBare Rendering = "bare"
	// RenderSemantic is "YEAR.BUILD.0" for artifacts that require a
	// three-part semantic version.
	RenderSemantic Rendering = "semantic"
	// RenderInstaller is "YEAR.BUILD.0.0", the four-part form Windows
	// installer tooling expects.
	RenderInstaller Rendering = "installer"
)

// Bare returns the "YEAR.BUILD" rendering, e.g. "2026.34".
func (s State) Bare() string {
	return fmt.Sprintf("%d.%d", s.Year, s.Build)
}

// Semantic returns the "YEAR.BUILD.0" rendering, e.g. "2026.34.0".
func (s State) Semantic() string {
	return fmt.Sprintf("%d.%d.0", s.Year, s.Build)
}

// Installer returns the "YEAR.BUILD.0.0" rendering, e.g. "2026.34.0.0".
func (s State) Installer() string {
	return fmt.Sprintf("%d.%d.0.0", s.Year, s.Build)
}

// Render returns the requested rendering of s. An empty Rendering means
// bare, so target declarations may leave the field out.
func (s State) Render(r Rendering) (string, error) {
	switch r {
	case RenderBare, "":
		return s.Bare(), nil
	case RenderSemantic:
		return s.Semantic(), nil
	case RenderInstaller:
		return s.Installer(), nil
	default:
		return "", fmt.Errorf("unknown rendering %q", r)
	}
}
