package searchcli

import (
	"avacasa/internal/core/domain"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
)

// Command - одно событие UI, прочитанное из строки ввода
type Command struct {
	Name string
	Args []string
}

const helpTemplate = `commands:
  search <text>              free-text search (empty clears)
  type <token|any>           property type, e.g. villa, holiday-home
  location <id,slug,...|any> location filter
  locations [term]           list searchable locations
  bedrooms <n|any>           at least n bedrooms
  price <min|-> <max|->      price range
  featured <on|off>
  page <n> | next | prev
  pan <north> <south> <east> <west>
  toggle                     list only <-> list and map
  select <id> | marker <id>
  refresh | clear | url | help | quit
property types: %s`

// HelpText - справка по командам со списком типов недвижимости
func HelpText() string {
	tokens := make([]string, 0, len(domain.AllPropertyTypes()))
	for _, pt := range domain.AllPropertyTypes() {
		tokens = append(tokens, pt.Token())
	}
	return fmt.Sprintf(helpTemplate, strings.Join(tokens, ", "))
}

var commandAliases = map[string]string{
	"q":     "quit",
	"exit":  "quit",
	"s":     "search",
	"loc":   "location",
	"beds":  "bedrooms",
	"map":   "toggle",
	"h":     "help",
	"?":     "help",
	"reset": "clear",
}

var knownCommands = map[string]struct{}{
	"search": {}, "type": {}, "location": {}, "locations": {}, "bedrooms": {}, "price": {},
	"featured": {}, "page": {}, "next": {}, "prev": {}, "pan": {}, "toggle": {}, "select": {},
	"marker": {}, "refresh": {}, "clear": {}, "url": {}, "help": {}, "quit": {},
}

// ParseCommand разбирает строку вида "<команда> <аргументы...>"
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	name := strings.ToLower(fields[0])
	if alias, ok := commandAliases[name]; ok {
		name = alias
	}
	if _, ok := knownCommands[name]; !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	return Command{Name: name, Args: fields[1:]}, nil
}

// Text - аргументы одной строкой (для search)
func (c Command) Text() string {
	return strings.Join(c.Args, " ")
}

func isAny(arg string) bool {
	switch strings.ToLower(arg) {
	case "any", "none", "-", "all":
		return true
	}
	return false
}

func parsePropertyTypeArg(args []string) (*domain.PropertyType, error) {
	if len(args) == 0 || isAny(args[0]) {
		return nil, nil
	}
	pt, ok := domain.ParsePropertyType(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown property type %q", args[0])
	}
	return &pt, nil
}

func parseLocationsArg(args []string) []string {
	if len(args) == 0 || isAny(args[0]) {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(strings.Join(args, ","), ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return domain.UniqueOrdered(ids)
}

func parseBedroomsArg(args []string) (*int, error) {
	if len(args) == 0 || isAny(args[0]) {
		return nil, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("bedrooms must be a non-negative integer, got %q", args[0])
	}
	return &n, nil
}

func parsePriceArg(arg string) (*float64, error) {
	if isAny(arg) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("price must be a non-negative number, got %q", arg)
	}
	return &v, nil
}

func parsePriceRangeArgs(args []string) (minPrice, maxPrice *float64, err error) {
	if len(args) > 0 {
		if minPrice, err = parsePriceArg(args[0]); err != nil {
			return nil, nil, err
		}
	}
	if len(args) > 1 {
		if maxPrice, err = parsePriceArg(args[1]); err != nil {
			return nil, nil, err
		}
	}
	return minPrice, maxPrice, nil
}

func parseFeaturedArg(args []string) (bool, error) {
	if len(args) == 0 {
		return true, nil
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(args[0])
	if err != nil {
		return false, fmt.Errorf("featured must be on or off, got %q", args[0])
	}
	return v, nil
}

func parsePageArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("page number is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("page must be a positive integer, got %q", args[0])
	}
	return n, nil
}

func parseBoundsArgs(args []string) (domain.MapBounds, error) {
	if len(args) != 4 {
		return domain.MapBounds{}, errors.New("pan requires north south east west")
	}
	var v [4]float64
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return domain.MapBounds{}, fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		v[i] = f
	}
	b := domain.MapBounds{North: v[0], South: v[1], East: v[2], West: v[3]}
	if err := b.Validate(); err != nil {
		return domain.MapBounds{}, err
	}
	return b, nil
}
