package lexer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/zjrosen/prism/internal/log"
)

// Default limits for a Tokenizer.
const (
	DefaultMaxInputBytes = 1 << 20
	DefaultMatchTimeout  = 2 * time.Second
	DefaultBudget        = 5 * time.Second
)

// compileOptions applies to every combined pattern. ExplicitCapture turns
// plain parentheses inside fragments into non-capturing groups, so only the
// named group wrapping each rule captures.
const compileOptions = regexp2.IgnoreCase | regexp2.Multiline | regexp2.ExplicitCapture

// Options bound the work a single Tokenize call may do. Exceeding any bound
// degrades to the whole-line tokenization.
type Options struct {
	// MaxInputBytes caps the input size. Zero disables the cap.
	MaxInputBytes int
	// MatchTimeout caps a single regex match. Zero disables the timeout.
	MatchTimeout time.Duration
	// Budget caps the wall-clock time of one call. Zero disables the budget.
	Budget time.Duration
}

// DefaultOptions returns the limits used by the package-level Tokenize.
func DefaultOptions() Options {
	return Options{
		MaxInputBytes: DefaultMaxInputBytes,
		MatchTimeout:  DefaultMatchTimeout,
		Budget:        DefaultBudget,
	}
}

// program is one language's compiled alternation.
type program struct {
	re     *regexp2.Regexp
	rules  []Rule
	groups []int // group number of each rule's wrapping group
}

// Tokenizer classifies source text with the built-in pattern sets.
// It is safe for concurrent use.
type Tokenizer struct {
	opts     Options
	rules    [languageCount][]Rule
	once     sync.Once
	programs [languageCount]*program
	now      func() time.Time
}

// New creates a Tokenizer. Patterns are compiled on first use.
func New(opts Options) *Tokenizer {
	return &Tokenizer{opts: opts, rules: registry, now: time.Now}
}

var (
	defaultTokenizer     *Tokenizer
	defaultTokenizerOnce sync.Once
)

// Default returns the shared Tokenizer configured with DefaultOptions.
func Default() *Tokenizer {
	defaultTokenizerOnce.Do(func() {
		defaultTokenizer = New(DefaultOptions())
	})
	return defaultTokenizer
}

// Tokenize classifies text using the default Tokenizer.
func Tokenize(text, language string) []Token {
	return Default().Tokenize(text, language)
}

// Options returns the limits the tokenizer was created with.
func (t *Tokenizer) Options() Options {
	return t.opts
}

func (t *Tokenizer) compile() {
	for _, lang := range Languages() {
		prog, err := compileRules(t.rules[lang], t.opts.MatchTimeout)
		if err != nil {
			log.ErrorErr(log.CatLexer, "pattern compilation failed", err, "language", lang)
			continue
		}
		t.programs[lang] = prog
	}
	log.Debug(log.CatLexer, "compiled pattern sets", "languages", len(Languages()))
}

func compileRules(rules []Rule, timeout time.Duration) (*program, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules")
	}

	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = fmt.Sprintf("(?<%s>%s)", groupName(i), r.Pattern)
	}

	re, err := regexp2.Compile(strings.Join(parts, "|"), compileOptions)
	if err != nil {
		return nil, fmt.Errorf("compiling alternation: %w", err)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	groups := make([]int, len(rules))
	for i := range rules {
		n := re.GroupNumberFromName(groupName(i))
		if n < 0 {
			return nil, fmt.Errorf("rule %d: group missing after compile", i)
		}
		groups[i] = n
	}

	return &program{re: re, rules: rules, groups: groups}, nil
}

func groupName(i int) string {
	return fmt.Sprintf("r%d", i)
}

// program returns the compiled alternation for lang, or nil when the
// language has no pattern set or its patterns failed to compile.
func (t *Tokenizer) program(lang Language) *program {
	if !lang.Known() {
		return nil
	}
	t.once.Do(t.compile)
	return t.programs[lang]
}

// Tokenize splits text into typed tokens for the given language tag.
// It never fails: unknown languages, compile failures and exhausted limits
// all produce the whole-line tokenization of Lines.
func (t *Tokenizer) Tokenize(text, language string) []Token {
	if text == "" {
		return nil
	}

	lang := ParseLanguage(language)
	prog := t.program(lang)
	if prog == nil {
		return Lines(text)
	}

	if t.opts.MaxInputBytes > 0 && len(text) > t.opts.MaxInputBytes {
		log.Warn(log.CatLexer, "input exceeds size limit, using plain lines",
			"language", lang, "bytes", len(text), "limit", t.opts.MaxInputBytes)
		return Lines(text)
	}

	tokens, err := t.scan(prog, text)
	if err != nil {
		log.Warn(log.CatLexer, "tokenization abandoned, using plain lines",
			"language", lang, "bytes", len(text), "error", err)
		return Lines(text)
	}
	return tokens
}

func (t *Tokenizer) scan(prog *program, text string) ([]Token, error) {
	var deadline time.Time
	if t.opts.Budget > 0 {
		deadline = t.now().Add(t.opts.Budget)
	}

	runes := []rune(text)
	e := emitter{line: 1}
	last := 0

	m, err := prog.re.FindRunesMatch(runes)
	for ; m != nil; m, err = prog.re.FindNextMatch(m) {
		if m.Index > last {
			e.emit(string(runes[last:m.Index]), Untyped)
		}
		e.emit(m.String(), prog.classify(m))
		last = m.Index + m.Length

		if !deadline.IsZero() && t.now().After(deadline) {
			return nil, fmt.Errorf("time budget of %s exceeded", t.opts.Budget)
		}
	}
	if err != nil {
		return nil, err
	}

	if last < len(runes) {
		e.emit(string(runes[last:]), Untyped)
	}
	return e.tokens, nil
}

// classify returns the type of the first rule whose group took part in the
// match with a non-empty capture.
func (p *program) classify(m *regexp2.Match) TokenType {
	for i, n := range p.groups {
		g := m.GroupByNumber(n)
		if g != nil && len(g.Captures) > 0 && g.Length > 0 {
			return p.rules[i].Type
		}
	}
	return Untyped
}

// emitter splits text at newlines and tracks the current line.
type emitter struct {
	tokens []Token
	line   int
}

func (e *emitter) emit(s string, typ TokenType) {
	for i, piece := range strings.Split(s, "\n") {
		if i > 0 {
			e.line++
		}
		if piece != "" {
			e.tokens = append(e.tokens, Token{Value: piece, Type: typ, Line: e.line})
		}
	}
}
