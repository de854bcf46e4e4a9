/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
)

// One item per line:
//
//	○ learn_python! 3mo "Learn Python basics" {"Programming"} beginner >>> ⊢[install_ide] @@@ due(2026-01-01,warn) # notes ### auto
//
// Pre-title: status symbol, id with optional priority suffix, duration.
// Title: one JSON string. Post-title: mandatory {"chart",...} block, optional
// comma-separated tags, optional ">>>" relation groups, optional "@@@" time
// constraints, optional "#" user and "###" auto comments.

var relationGroupPattern = regexp.MustCompile(`([^\s\[]+)\[([^\]]*)\]`)

// ParseItem parses one line of the text format. The occlude flag records
// which file partition the line came from; it is not part of the line itself.
func ParseItem(line string, occlude bool) (Item, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Item{}, parseErr(ErrEmptyLine, line, "")
	}

	quote := strings.IndexByte(line, '"')
	if quote < 0 {
		return Item{}, parseErr(ErrUnterminatedQuote, line, "no title found")
	}

	item, err := parsePreTitle(strings.TrimSpace(line[:quote]), line)
	if err != nil {
		return Item{}, err
	}

	end := closingQuote(line, quote)
	if end < 0 {
		return Item{}, parseErr(ErrUnterminatedQuote, line, "")
	}
	if err := json.Unmarshal([]byte(line[quote:end+1]), &item.Title); err != nil {
		return Item{}, parseErr(ErrUnterminatedQuote, line, "title is not a valid JSON string")
	}

	if err := parsePostTitle(&item, strings.TrimSpace(line[end+1:]), line); err != nil {
		return Item{}, err
	}
	item.Occlude = occlude
	return item, nil
}

func parsePreTitle(preTitle, line string) (Item, error) {
	fields := strings.Fields(preTitle)
	if len(fields) != 3 {
		return Item{}, parseErr(ErrUnknownSymbol, line, "invalid pre-title section")
	}
	status, ok := StatusFromSymbol(fields[0])
	if !ok {
		return Item{}, parseErr(ErrUnknownSymbol, line, "unknown status symbol "+fields[0])
	}
	id, priority := splitPriority(fields[1])
	duration, err := ParseDuration(fields[2])
	if err != nil {
		return Item{}, err
	}
	return Item{ID: id, Status: status, Priority: priority, Duration: duration}, nil
}

// closingQuote finds the title's closing quote, skipping quotes preceded by
// an odd number of backslashes.
func closingQuote(line string, open int) int {
	for i := open + 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j > open && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i
		}
	}
	return -1
}

func parsePostTitle(item *Item, post, line string) error {
	// comments come off first, auto ("###") before user ("#") so a "#"
	// inside the auto comment is not taken for a user comment
	if i := strings.Index(post, "###"); i >= 0 {
		item.AutoComment = strings.TrimSpace(post[i+3:])
		post = strings.TrimSpace(post[:i])
	}
	if i := strings.IndexByte(post, '#'); i >= 0 {
		item.UserComment = strings.TrimSpace(post[i+1:])
		post = strings.TrimSpace(post[:i])
	}

	if !strings.HasPrefix(post, "{") {
		return parseErr(ErrInvalidCharts, line, "charts block must follow the title")
	}
	closeBrace := strings.IndexByte(post, '}')
	if closeBrace < 0 {
		return parseErr(ErrInvalidCharts, line, "unterminated charts block")
	}
	for _, c := range strings.Split(post[1:closeBrace], ",") {
		c = strings.Trim(strings.TrimSpace(c), `"`)
		if c != "" {
			item.Charts = append(item.Charts, c)
		}
	}
	rest := strings.TrimSpace(post[closeBrace+1:])

	var constraintSection string
	if i := strings.Index(rest, "@@@"); i >= 0 {
		constraintSection = rest[i+3:]
		rest = strings.TrimSpace(rest[:i])
	}

	var relationSection string
	if i := strings.Index(rest, ">>>"); i >= 0 {
		relationSection = rest[i+3:]
		rest = strings.TrimSpace(rest[:i])
	}

	for _, t := range strings.Split(rest, ",") {
		if t = strings.TrimSpace(t); t != "" {
			item.Tags = append(item.Tags, t)
		}
	}

	if err := parseRelationSection(item, relationSection, line); err != nil {
		return err
	}

	if strings.TrimSpace(constraintSection) != "" {
		constraints, err := parseConstraintSection(constraintSection)
		if err != nil {
			return err
		}
		item.TimeConstraints = constraints
	}
	return nil
}

func parseRelationSection(item *Item, section, line string) error {
	section = strings.TrimSpace(section)
	if section == "" {
		return nil
	}
	groups := relationGroupPattern.FindAllStringSubmatch(section, -1)
	if len(groups) == 0 {
		return parseErr(ErrUnknownSymbol, line, "invalid relation section")
	}
	for _, g := range groups {
		rt, ok := RelationFromSymbol(g[1])
		if !ok {
			return parseErr(ErrUnknownSymbol, line, "unknown relation symbol "+g[1])
		}
		if item.Relations == nil {
			item.Relations = make(map[RelationType][]string)
		}
		for _, target := range strings.Split(g[2], ",") {
			if target = strings.TrimSpace(target); target != "" {
				item.Relations[rt] = append(item.Relations[rt], target)
			}
		}
	}
	return nil
}

// String renders the canonical one-line text form. Relations serialize in
// the fixed AllRelationTypes order so output is deterministic; the occlude
// flag is not part of the line, only of which file it lands in.
func (it Item) String() string {
	var b strings.Builder
	b.WriteString(it.Status.Symbol())
	b.WriteString(" ")
	b.WriteString(it.ID)
	b.WriteString(it.Priority.Symbol())
	b.WriteString(" ")
	b.WriteString(it.Duration.String())
	b.WriteString(" ")
	b.WriteString(jsonQuote(it.Title))
	b.WriteString(" ")

	if len(it.Charts) == 0 {
		b.WriteString("{}")
	} else {
		b.WriteString(`{"`)
		b.WriteString(strings.Join(it.Charts, `","`))
		b.WriteString(`"}`)
	}

	if len(it.Tags) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(it.Tags, ","))
	}

	var relParts []string
	for _, rt := range AllRelationTypes {
		if targets := it.Relations[rt]; len(targets) > 0 {
			relParts = append(relParts, rt.Symbol()+"["+strings.Join(targets, ",")+"]")
		}
	}
	if len(relParts) > 0 {
		b.WriteString(" >>> ")
		b.WriteString(strings.Join(relParts, " "))
	}

	if len(it.TimeConstraints) > 0 {
		calls := make([]string, len(it.TimeConstraints))
		for i, tc := range it.TimeConstraints {
			calls[i] = tc.String()
		}
		b.WriteString(" @@@ ")
		b.WriteString(strings.Join(calls, " "))
	}

	if it.UserComment != "" {
		b.WriteString(" # ")
		b.WriteString(it.UserComment)
	}
	if it.AutoComment != "" {
		b.WriteString(" ### ")
		b.WriteString(it.AutoComment)
	}
	return b.String()
}

// jsonQuote encodes a title as a JSON string without HTML escaping, so
// titles containing ">" or "&" stay readable in the file.
func jsonQuote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
