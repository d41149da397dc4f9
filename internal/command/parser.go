package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// Time layouts accepted by the command language. Datetimes are minute
// resolution; zone binding happens inside the engine, so both parse as
// plain wall-clock values.
const (
	dateTimeLayout = "2006-01-02T15:04"
	dateLayout     = "2006-01-02"
)

// ParseError describes an input line the parser could not understand.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// Parse turns one command line into a typed Command. The line must contain
// exactly one command; leftover tokens are an error. Subjects and values
// containing spaces must be double-quoted.
func Parse(line string) (Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, parseErrorf("empty command")
	}

	p := &parser{tokens: tokens}
	head, _ := p.next("command")
	switch head {
	case "create":
		return p.parseCreate()
	case "edit":
		return p.parseEdit()
	case "use":
		return p.parseUse()
	case "remove":
		return p.parseRemove()
	case "copy":
		return p.parseCopy()
	case "print":
		return p.parsePrint()
	case "show":
		return p.parseShow()
	case "export":
		return p.parseExport()
	case "import":
		return p.parseImport()
	case "exit":
		return Exit{}, p.finish()
	}
	return nil, parseErrorf("unknown command %q", head)
}

// tokenize splits a line on spaces and tabs. A double-quoted run forms a
// single token with the quotes stripped, so subjects like "Team Sync"
// survive as one word.
func tokenize(line string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '"':
			rest := line[i+1:]
			j := strings.IndexByte(rest, '"')
			if j < 0 {
				return nil, parseErrorf("unterminated quote in %q", line)
			}
			tokens = append(tokens, rest[:j])
			i += j + 2
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != '"' {
				j++
			}
			tokens = append(tokens, line[i:j])
			i = j
		}
	}
	return tokens, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) next(what string) (string, error) {
	if p.pos >= len(p.tokens) {
		return "", parseErrorf("missing %s", what)
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

func (p *parser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *parser) keyword(word string) error {
	tok, err := p.next(strconv.Quote(word))
	if err != nil {
		return err
	}
	if tok != word {
		return parseErrorf("expected %q, got %q", word, tok)
	}
	return nil
}

// finish rejects trailing tokens after a complete command.
func (p *parser) finish() error {
	if p.pos < len(p.tokens) {
		return parseErrorf("unexpected input after command: %q", p.tokens[p.pos])
	}
	return nil
}

func (p *parser) dateTime(what string) (time.Time, error) {
	tok, err := p.next(what)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(dateTimeLayout, tok)
	if err != nil {
		return time.Time{}, parseErrorf("invalid %s %q (want YYYY-MM-DDThh:mm)", what, tok)
	}
	return t, nil
}

func (p *parser) date(what string) (time.Time, error) {
	tok, err := p.next(what)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(dateLayout, tok)
	if err != nil {
		return time.Time{}, parseErrorf("invalid %s %q (want YYYY-MM-DD)", what, tok)
	}
	return t, nil
}

// dateOrDateTime accepts either layout, reporting which one matched.
func (p *parser) dateOrDateTime(what string) (t time.Time, dateOnly bool, err error) {
	tok, err := p.next(what)
	if err != nil {
		return time.Time{}, false, err
	}
	if t, err := time.Parse(dateTimeLayout, tok); err == nil {
		return t, false, nil
	}
	if t, err := time.Parse(dateLayout, tok); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, parseErrorf("invalid %s %q (want YYYY-MM-DD or YYYY-MM-DDThh:mm)", what, tok)
}

func (p *parser) parseCreate() (Command, error) {
	kind, err := p.next(`"calendar" or "event"`)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "calendar":
		if err := p.keyword("--name"); err != nil {
			return nil, err
		}
		name, err := p.next("calendar name")
		if err != nil {
			return nil, err
		}
		if err := p.keyword("--timezone"); err != nil {
			return nil, err
		}
		zone, err := p.next("timezone")
		if err != nil {
			return nil, err
		}
		return CreateCalendar{Name: name, Timezone: zone}, p.finish()
	case "event":
		return p.parseCreateEvent()
	}
	return nil, parseErrorf(`expected "calendar" or "event", got %q`, kind)
}

func (p *parser) parseCreateEvent() (Command, error) {
	cmd := CreateEvent{}
	if p.peek() == "--autoDecline" {
		p.pos++
		cmd.AutoDecline = true
	}

	subject, err := p.next("event subject")
	if err != nil {
		return nil, err
	}
	cmd.Subject = subject

	form, err := p.next(`"from" or "on"`)
	if err != nil {
		return nil, err
	}
	switch form {
	case "from":
		if cmd.Start, err = p.dateTime("start datetime"); err != nil {
			return nil, err
		}
		if err := p.keyword("to"); err != nil {
			return nil, err
		}
		if cmd.End, err = p.dateTime("end datetime"); err != nil {
			return nil, err
		}
	case "on":
		if cmd.Start, err = p.date("event date"); err != nil {
			return nil, err
		}
		cmd.AllDay = true
	default:
		return nil, parseErrorf(`expected "from" or "on", got %q`, form)
	}

	if cmd.Repeat, err = p.parseRepeat(); err != nil {
		return nil, err
	}
	return cmd, p.finish()
}

// parseRepeat consumes an optional repeats clause. Returns nil with no
// error when the clause is absent.
func (p *parser) parseRepeat() (*Repeat, error) {
	if p.peek() != "repeats" {
		return nil, nil
	}
	p.pos++

	letters, err := p.next("weekday letters")
	if err != nil {
		return nil, err
	}
	days, err := event.ParseWeekdays(letters)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}

	mode, err := p.next(`"for" or "until"`)
	if err != nil {
		return nil, err
	}
	switch mode {
	case "for":
		tok, err := p.next("occurrence count")
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, parseErrorf("invalid occurrence count %q", tok)
		}
		if n < 1 {
			return nil, parseErrorf("occurrence count must be positive, got %d", n)
		}
		if err := p.keyword("times"); err != nil {
			return nil, err
		}
		return &Repeat{Days: days, Count: n}, nil
	case "until":
		until, dateOnly, err := p.dateOrDateTime("until boundary")
		if err != nil {
			return nil, err
		}
		return &Repeat{Days: days, Until: until, UntilIsDate: dateOnly}, nil
	}
	return nil, parseErrorf(`expected "for" or "until", got %q`, mode)
}

func (p *parser) parseEdit() (Command, error) {
	kind, err := p.next(`"calendar", "event", "events" or "series"`)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "calendar":
		return p.parseEditCalendar()
	case "event":
		prop, subject, err := p.parseEditHead()
		if err != nil {
			return nil, err
		}
		from, err := p.dateTime("start datetime")
		if err != nil {
			return nil, err
		}
		if err := p.keyword("to"); err != nil {
			return nil, err
		}
		to, err := p.dateTime("end datetime")
		if err != nil {
			return nil, err
		}
		change, err := p.parseWith(prop)
		if err != nil {
			return nil, err
		}
		return EditEvent{Subject: subject, From: from, To: to, Change: change}, p.finish()
	case "events", "series":
		prop, subject, err := p.parseEditHead()
		if err != nil {
			return nil, err
		}
		from, err := p.dateTime("start datetime")
		if err != nil {
			return nil, err
		}
		change, err := p.parseWith(prop)
		if err != nil {
			return nil, err
		}
		if kind == "series" {
			return EditSeries{Subject: subject, From: from, Change: change}, p.finish()
		}
		return EditEvents{Subject: subject, From: from, Change: change}, p.finish()
	}
	return nil, parseErrorf(`expected "calendar", "event", "events" or "series", got %q`, kind)
}

func (p *parser) parseEditCalendar() (Command, error) {
	if err := p.keyword("--name"); err != nil {
		return nil, err
	}
	name, err := p.next("calendar name")
	if err != nil {
		return nil, err
	}
	if err := p.keyword("--property"); err != nil {
		return nil, err
	}
	prop, err := p.next(`"name" or "timezone"`)
	if err != nil {
		return nil, err
	}
	if prop != "name" && prop != "timezone" {
		return nil, parseErrorf("unknown calendar property %q", prop)
	}
	value, err := p.next("new value")
	if err != nil {
		return nil, err
	}
	return EditCalendar{Name: name, Property: prop, Value: value}, p.finish()
}

// parseEditHead consumes the property name, the subject and the "from"
// keyword shared by the three event edit forms.
func (p *parser) parseEditHead() (event.Property, string, error) {
	propTok, err := p.next("event property")
	if err != nil {
		return "", "", err
	}
	prop, err := event.ParseProperty(propTok)
	if err != nil {
		return "", "", &ParseError{Message: err.Error()}
	}
	subject, err := p.next("event subject")
	if err != nil {
		return "", "", err
	}
	if err := p.keyword("from"); err != nil {
		return "", "", err
	}
	return prop, subject, nil
}

// parseWith consumes the "with <value>" tail, converting the value to a
// datetime for start and end edits.
func (p *parser) parseWith(prop event.Property) (event.Change, error) {
	if err := p.keyword("with"); err != nil {
		return event.Change{}, err
	}
	value, err := p.next("new value")
	if err != nil {
		return event.Change{}, err
	}
	if prop.TimeValued() {
		when, err := time.Parse(dateTimeLayout, value)
		if err != nil {
			return event.Change{}, parseErrorf("invalid %s value %q (want YYYY-MM-DDThh:mm)", prop, value)
		}
		return event.Change{Property: prop, When: when}, nil
	}
	return event.Change{Property: prop, Text: value}, nil
}

func (p *parser) parseUse() (Command, error) {
	if err := p.keyword("calendar"); err != nil {
		return nil, err
	}
	if err := p.keyword("--name"); err != nil {
		return nil, err
	}
	name, err := p.next("calendar name")
	if err != nil {
		return nil, err
	}
	return UseCalendar{Name: name}, p.finish()
}

func (p *parser) parseRemove() (Command, error) {
	if err := p.keyword("event"); err != nil {
		return nil, err
	}
	subject, err := p.next("event subject")
	if err != nil {
		return nil, err
	}
	if err := p.keyword("from"); err != nil {
		return nil, err
	}
	from, err := p.dateTime("start datetime")
	if err != nil {
		return nil, err
	}
	return RemoveEvent{Subject: subject, From: from}, p.finish()
}

func (p *parser) parseCopy() (Command, error) {
	kind, err := p.next(`"event" or "events"`)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "event":
		subject, err := p.next("event subject")
		if err != nil {
			return nil, err
		}
		if err := p.keyword("on"); err != nil {
			return nil, err
		}
		from, err := p.dateTime("source datetime")
		if err != nil {
			return nil, err
		}
		target, to, err := p.parseCopyTail(p.dateTime, "target datetime")
		if err != nil {
			return nil, err
		}
		return CopyEvent{Subject: subject, From: from, Target: target, To: to}, p.finish()
	case "events":
		form, err := p.next(`"on" or "between"`)
		if err != nil {
			return nil, err
		}
		switch form {
		case "on":
			day, err := p.date("source date")
			if err != nil {
				return nil, err
			}
			target, to, err := p.parseCopyTail(p.date, "target date")
			if err != nil {
				return nil, err
			}
			return CopyEventsOn{Day: day, Target: target, To: to}, p.finish()
		case "between":
			start, err := p.date("range start date")
			if err != nil {
				return nil, err
			}
			if err := p.keyword("and"); err != nil {
				return nil, err
			}
			end, err := p.date("range end date")
			if err != nil {
				return nil, err
			}
			target, to, err := p.parseCopyTail(p.date, "target date")
			if err != nil {
				return nil, err
			}
			return CopyEventsBetween{Start: start, End: end, Target: target, To: to}, p.finish()
		}
		return nil, parseErrorf(`expected "on" or "between", got %q`, form)
	}
	return nil, parseErrorf(`expected "event" or "events", got %q`, kind)
}

// parseCopyTail consumes the --target <calendar> to <when> tail shared by
// the copy forms. when parses the destination with the caller's layout.
func (p *parser) parseCopyTail(when func(string) (time.Time, error), what string) (string, time.Time, error) {
	if err := p.keyword("--target"); err != nil {
		return "", time.Time{}, err
	}
	target, err := p.next("target calendar name")
	if err != nil {
		return "", time.Time{}, err
	}
	if err := p.keyword("to"); err != nil {
		return "", time.Time{}, err
	}
	to, err := when(what)
	if err != nil {
		return "", time.Time{}, err
	}
	return target, to, nil
}

func (p *parser) parsePrint() (Command, error) {
	if err := p.keyword("events"); err != nil {
		return nil, err
	}
	form, err := p.next(`"on" or "from"`)
	if err != nil {
		return nil, err
	}
	switch form {
	case "on":
		day, err := p.date("date")
		if err != nil {
			return nil, err
		}
		return PrintEventsOn{Day: day}, p.finish()
	case "from":
		from, err := p.dateTime("range start")
		if err != nil {
			return nil, err
		}
		if err := p.keyword("to"); err != nil {
			return nil, err
		}
		to, err := p.dateTime("range end")
		if err != nil {
			return nil, err
		}
		return PrintEventsRange{From: from, To: to}, p.finish()
	}
	return nil, parseErrorf(`expected "on" or "from", got %q`, form)
}

func (p *parser) parseShow() (Command, error) {
	if err := p.keyword("status"); err != nil {
		return nil, err
	}
	if err := p.keyword("on"); err != nil {
		return nil, err
	}
	at, err := p.dateTime("status datetime")
	if err != nil {
		return nil, err
	}
	return ShowStatus{At: at}, p.finish()
}

func (p *parser) parseExport() (Command, error) {
	format, err := p.next(`"cal" or "ics"`)
	if err != nil {
		return nil, err
	}
	if format != "cal" && format != "ics" {
		return nil, parseErrorf(`expected "cal" or "ics", got %q`, format)
	}
	path, err := p.next("file path")
	if err != nil {
		return nil, err
	}
	if format == "cal" {
		return ExportCSV{Path: path}, p.finish()
	}
	return ExportICS{Path: path}, p.finish()
}

func (p *parser) parseImport() (Command, error) {
	if err := p.keyword("cal"); err != nil {
		return nil, err
	}
	path, err := p.next("file path")
	if err != nil {
		return nil, err
	}
	return ImportCSV{Path: path}, p.finish()
}
