package grammar

// Rule is a named production. Extra rules are trivia (whitespace,
// comments) that bypass the dependency ordering entirely.
type Rule struct {
	Name    string
	Body    Body
	IsExtra bool
}

// Grammar is a named, ordered rule set. Rule order follows the
// grammar.json document so generation is reproducible.
type Grammar struct {
	Name  string
	Rules []Rule
}
