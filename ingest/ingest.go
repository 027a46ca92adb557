// Package ingest turns raw source model definitions into the canonical
// schema graph. Three source dialects are supported — Prisma, Mongoose and
// Sequelize — detected by token heuristics and parsed by best-effort
// structural scanners, not grammar front ends: a declaration the scanner
// cannot confidently extract is skipped rather than guessed at, and a
// field with ambiguous relation metadata stays a plain attribute.
//
// The source dialect set is independent of the conversion dialects in the
// dialect package.
package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/morphedb/morphe/schema"
)

// Dialect tags a source model-definition syntax.
type Dialect string

// Supported source dialects.
const (
	Prisma    Dialect = "prisma"
	Mongoose  Dialect = "mongoose"
	Sequelize Dialect = "sequelize"
)

// EntityDecl is a parsed declaration block: one entity with its
// attributes, addressed by display name until the merge allocates ids.
type EntityDecl struct {
	Name       string
	Attributes []schema.Attribute
}

// RelationDecl is a candidate relationship whose endpoints are display
// names. Endpoints re-resolve to entity ids after all files merge,
// because ids are allocated during merge, not during individual parses.
type RelationDecl struct {
	SourceName  string
	TargetName  string
	SourceAttr  string
	TargetAttr  string
	Cardinality schema.Cardinality
}

// Fragment is the output of parsing one file.
type Fragment struct {
	Entities  []EntityDecl
	Relations []RelationDecl
}

var (
	prismaModelRe     = regexp.MustCompile(`(?m)^\s*model\s+\w+\s*\{`)
	mongooseSchemaRe  = regexp.MustCompile(`new\s+(?:mongoose\.)?Schema\s*\(`)
	sequelizeDefineRe = regexp.MustCompile(`\.\s*define\s*\(\s*['"]`)
	sequelizeInitRe   = regexp.MustCompile(`\w+\.init\s*\(`)
)

// DetectDialect inspects the text for dialect-distinguishing tokens and
// returns the best match, or false if nothing is recognized. Unrecognized
// files are the caller's cue to skip with a warning, not to fail.
func DetectDialect(text string) (Dialect, bool) {
	scores := map[Dialect]int{
		Prisma:    scoreTokens(text, prismaModelRe.MatchString(text), "datasource ", "generator ", "@id", "@relation", "@unique"),
		Mongoose:  scoreTokens(text, mongooseSchemaRe.MatchString(text), "mongoose", "Schema.Types.", "mongoose.model("),
		Sequelize: scoreTokens(text, sequelizeDefineRe.MatchString(text) || sequelizeInitRe.MatchString(text), "DataTypes.", ".belongsTo(", ".hasMany(", "Sequelize"),
	}
	best, bestScore := Dialect(""), 0
	for _, d := range []Dialect{Prisma, Mongoose, Sequelize} {
		if scores[d] > bestScore {
			best, bestScore = d, scores[d]
		}
	}
	// A declaration keyword alone is not enough; require a second signal
	// so prose that happens to mention a keyword does not match.
	if bestScore < 2 {
		return "", false
	}
	return best, true
}

func scoreTokens(text string, declaration bool, tokens ...string) int {
	score := 0
	if declaration {
		score += 2
	}
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			score++
		}
	}
	return score
}

// Parse dispatches to the scanner for the given dialect. Adding a dialect
// means extending this switch and the Dialect set, nothing else.
func Parse(d Dialect, text string) (*Fragment, error) {
	switch d {
	case Prisma:
		return parsePrisma(text)
	case Mongoose:
		return parseMongoose(text)
	case Sequelize:
		return parseSequelize(text)
	default:
		return nil, fmt.Errorf("ingest: unknown source dialect %q", d)
	}
}
