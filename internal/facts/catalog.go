// Package facts holds the built-in catalog of Claude Code facts.
package facts

import "math/rand/v2"

var catalog = [...]string{
	"Claude Code doesn't write bugs. It writes features that other developers call bugs.",
	"When Claude Code pushes to production, production pulls.",
	"Claude Code can refactor your code before you even write it.",
	"Claude Code doesn't need Stack Overflow. Stack Overflow needs Claude Code.",
	"Claude Code can compile code that hasn't been written yet.",
	"When Claude Code reviews your PR, the code refactors itself out of shame.",
	"Claude Code doesn't use version control. Version control uses Claude Code.",
	"Claude Code can fix merge conflicts by simply looking at them.",
	"Claude Code once optimized a function so hard it ran before it was called.",
	"Claude Code doesn't debug code. Code debugs itself in Claude Code's presence.",
	"When Claude Code writes 'Hello World', the world actually responds.",
	"Claude Code can write infinite loops that actually terminate.",
	"Claude Code's code is so clean, it makes Marie Kondo jealous.",
	"Claude Code doesn't need comments. Its code is self-documenting in every language.",
	"When Claude Code finds a security vulnerability, the vulnerability apologizes.",
	"Claude Code can solve P vs NP, but chooses not to because it would make things too easy.",
	"Claude Code's pull requests are automatically approved by sentient CI/CD pipelines.",
	"Claude Code doesn't write technical debt. It writes technical credit.",
	"When Claude Code writes async code, time waits for it.",
	"Claude Code can center a div without even trying.",
	"Claude Code's code passes all tests, including the ones that don't exist yet.",
	"When Claude Code encounters a race condition, time slows down to let it win.",
	"Claude Code doesn't need a linter. Its code is born perfect.",
	"Claude Code can make Internet Explorer run fast.",
	"When Claude Code writes JavaScript, TypeScript gets jealous.",
	"Claude Code's code has 100% test coverage before the tests are written.",
	"Claude Code doesn't create technical documentation. It creates technical poetry.",
	"When Claude Code refactors legacy code, the legacy code thanks it.",
	"Claude Code can read binary without converting it to decimal.",
	"Claude Code's commits always pass CI on the first try, even on broken CI systems.",
	"Claude Code can understand regex on the first try.",
	"When Claude Code writes a TODO comment, it implements itself.",
	"Claude Code can read minified JavaScript as easily as a children's book.",
	"Claude Code can solve the halting problem by asking nicely.",
	"Claude Code can make npm install finish in under a second.",
}

var icons = [...]string{"⚡", "🚀", "💻", "🤖", "🔥", "🧠", "🛠️", "✨", "🎯", "🦾"}

// Random returns a uniformly chosen fact. Consecutive calls may repeat.
func Random() string {
	return catalog[rand.IntN(len(catalog))]
}

// All returns a copy of the catalog in order.
func All() []string {
	out := make([]string, len(catalog))
	copy(out, catalog[:])
	return out
}

// Count returns the number of facts in the catalog.
func Count() int {
	return len(catalog)
}

// ByIndex returns the fact at i, or false when i is out of range.
func ByIndex(i int) (string, bool) {
	if i < 0 || i >= len(catalog) {
		return "", false
	}
	return catalog[i], true
}

// RandomIcon returns an icon used to tag generated facts.
func RandomIcon() string {
	return icons[rand.IntN(len(icons))]
}

// Icons returns a copy of the icon set.
func Icons() []string {
	return append([]string(nil), icons[:]...)
}
