package searchcli

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"avacasa/internal/core/searchpage"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SearchPage - операции страницы поиска, которые вызывает терминал
type SearchPage interface {
	Mount(ctx context.Context)
	Search(ctx context.Context, query string)
	SetPropertyType(ctx context.Context, pt *domain.PropertyType)
	SetLocations(ctx context.Context, ids []string)
	SetBedrooms(ctx context.Context, bedrooms *int)
	SetPriceRange(ctx context.Context, minPrice, maxPrice *float64)
	SetFeatured(ctx context.Context, featured bool)
	GoToPage(ctx context.Context, page int)
	ClearFilters(ctx context.Context)
	Refresh(ctx context.Context)
	OnBoundsChanged(bounds domain.MapBounds)
	ToggleViewMode(ctx context.Context) searchpage.ViewMode
	SelectFromCard(propertyID string)
	SelectFromMarker(propertyID string)
	Locations(ctx context.Context, term string) ([]domain.SearchLocation, error)
	ActiveLocations(ctx context.Context) ([]domain.SearchLocation, error)
	Filters() domain.SearchFilters
	View() searchpage.ResultView
	Close()
}

// Locator - текущий адрес страницы
type Locator interface {
	Location() string
}

// Session читает команды из in и выполняет их над одной страницей поиска
type Session struct {
	page    SearchPage
	out     io.Writer
	locator Locator
	// settle вызывается после каждой команды; в терминале ждет ответов в полете
	settle func()
}

func NewSession(page SearchPage, out io.Writer, locator Locator, settle func()) *Session {
	if settle == nil {
		settle = func() {}
	}
	return &Session{page: page, out: out, locator: locator, settle: settle}
}

// Run - основной цикл: Mount, затем команды до quit, EOF или отмены ctx
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "SearchSession"})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.page.Mount(ctx)
	s.settle()
	defer s.page.Close()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, "> ")
		select {
		case <-ctx.Done():
			logger.Info("Search session cancelled", nil)
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("failed to read commands: %w", err)
					}
				default:
				}
				return nil
			}

			cmd, err := ParseCommand(line)
			if errors.Is(err, ErrEmptyCommand) {
				continue
			}
			if err != nil {
				fmt.Fprintf(s.out, "error: %v (type help)\n", err)
				continue
			}

			quit, err := s.Execute(ctx, cmd)
			if err != nil {
				logger.Debug("Command rejected", port.Fields{"command": cmd.Name, "error": err.Error()})
				fmt.Fprintf(s.out, "error: %v\n", err)
				continue
			}
			if quit {
				return nil
			}
			s.settle()
		}
	}
}

// Execute выполняет одну команду. Возвращает true для quit.
func (s *Session) Execute(ctx context.Context, cmd Command) (bool, error) {
	switch cmd.Name {
	case "quit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, HelpText())
	case "search":
		s.page.Search(ctx, cmd.Text())
	case "type":
		pt, err := parsePropertyTypeArg(cmd.Args)
		if err != nil {
			return false, err
		}
		s.page.SetPropertyType(ctx, pt)
	case "location":
		s.page.SetLocations(ctx, parseLocationsArg(cmd.Args))
		s.printActiveLocations(ctx)
	case "locations":
		return false, s.printLocations(ctx, cmd.Text())
	case "bedrooms":
		n, err := parseBedroomsArg(cmd.Args)
		if err != nil {
			return false, err
		}
		s.page.SetBedrooms(ctx, n)
	case "price":
		minPrice, maxPrice, err := parsePriceRangeArgs(cmd.Args)
		if err != nil {
			return false, err
		}
		s.page.SetPriceRange(ctx, minPrice, maxPrice)
	case "featured":
		v, err := parseFeaturedArg(cmd.Args)
		if err != nil {
			return false, err
		}
		s.page.SetFeatured(ctx, v)
	case "page":
		n, err := parsePageArg(cmd.Args)
		if err != nil {
			return false, err
		}
		s.page.GoToPage(ctx, n)
	case "next", "prev":
		return false, s.step(ctx, cmd.Name == "next")
	case "pan":
		b, err := parseBoundsArgs(cmd.Args)
		if err != nil {
			return false, err
		}
		s.page.OnBoundsChanged(b)
	case "toggle":
		mode := s.page.ToggleViewMode(ctx)
		fmt.Fprintf(s.out, "view mode: %s\n", mode)
	case "select", "marker":
		if len(cmd.Args) == 0 {
			return false, errors.New("property id is required")
		}
		if cmd.Name == "select" {
			s.page.SelectFromCard(cmd.Args[0])
		} else {
			s.page.SelectFromMarker(cmd.Args[0])
		}
	case "refresh":
		s.page.Refresh(ctx)
	case "clear":
		s.page.ClearFilters(ctx)
	case "url":
		if s.locator != nil {
			fmt.Fprintln(s.out, s.locator.Location())
		}
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	return false, nil
}

// step - кнопки Previous/Next; на краях ничего не делают
func (s *Session) step(ctx context.Context, forward bool) error {
	control := s.page.View().Pagination
	if control == nil {
		return errors.New("no pages to navigate")
	}
	if forward && control.NextEnabled {
		s.page.GoToPage(ctx, control.Current+1)
	} else if !forward && control.PrevEnabled {
		s.page.GoToPage(ctx, control.Current-1)
	}
	return nil
}

// printActiveLocations показывает, во что разрешились введенные ID и slug
func (s *Session) printActiveLocations(ctx context.Context) {
	active, err := s.page.ActiveLocations(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to resolve location filter", port.Fields{
			"component": "SearchSession",
			"error":     err.Error(),
		})
		fmt.Fprintf(s.out, "location filter: %s\n", strings.Join(s.page.Filters().LocationIDs, ", "))
		return
	}
	if len(active) == 0 {
		fmt.Fprintln(s.out, "location filter: any")
		return
	}
	names := make([]string, 0, len(active))
	for _, l := range active {
		names = append(names, fmt.Sprintf("%s (%s)", l.Name, l.Slug))
	}
	fmt.Fprintf(s.out, "location filter: %s\n", strings.Join(names, ", "))
}

func (s *Session) printLocations(ctx context.Context, term string) error {
	locations, err := s.page.Locations(ctx, term)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		fmt.Fprintln(s.out, "no locations found")
		return nil
	}
	for _, l := range locations {
		indent := ""
		if l.Kind == domain.LocationKindMinor {
			indent = "  "
		}
		fmt.Fprintf(s.out, "%s%s (%s, %d)\n", indent, l.Name, l.Slug, l.PropertyCount)
	}
	return nil
}
