package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/newsdesk/internal/backend"
	"github.com/kitbuilder587/newsdesk/internal/domain"
	"github.com/kitbuilder587/newsdesk/internal/topics"
)

const (
	defaultGatewayURL  = "http://localhost:8000"
	maxResults         = 50
	domainsPlaceholder = "kffhealthnews.org,reuters.com"
)

type Gateway interface {
	Search(ctx context.Context, params domain.SearchParams) (*backend.SearchReply, error)
	Count(ctx context.Context, params domain.SearchParams) (*backend.SearchReply, error)
	BaseURL() string
	SetBaseURL(u string)
}

type form struct {
	Query    string
	From     string
	To       string
	Domains  string
	Limit    int
	Selected []string
	Grouped  bool
}

func defaultForm() form {
	today := time.Now()
	return form{
		Query: `healthcare OR "health care"`,
		From:  today.AddDate(0, 0, -7).Format(domain.DateLayout),
		To:    today.Format(domain.DateLayout),
		Limit: domain.DefaultLimit,
	}
}

type Deps struct {
	Gateway Gateway
	Table   topics.Table
	Logger  *zap.Logger
	In      io.Reader
	Out     io.Writer
}

type App struct {
	gateway    Gateway
	classifier *topics.Classifier
	table      topics.Table
	logger     *zap.Logger
	in         *bufio.Reader
	out        io.Writer
	form       form
}

func New(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	table := deps.Table
	if table == nil {
		table = topics.DefaultTable()
	}

	return &App{
		gateway:    deps.Gateway,
		classifier: topics.NewClassifier(table),
		table:      table,
		logger:     deps.Logger,
		in:         bufio.NewReader(deps.In),
		out:        deps.Out,
		form:       defaultForm(),
	}
}

func (a *App) Run(ctx context.Context) error {
	a.println(headerStyle.Render("📰 NewsDesk"))
	a.println(dimStyle.Render("Search news articles by keyword and date range."))

	if a.gateway.BaseURL() == "" {
		a.promptGatewayURL()
	}

	for {
		a.showMenu()
		choice, err := a.readLine("Enter choice: ")
		if err != nil {
			return nil
		}

		switch choice {
		case "1":
			a.runSearch(ctx)
		case "2":
			a.runCount(ctx)
		case "3":
			a.editQuery()
		case "4":
			a.editDates()
		case "5":
			a.editDomains()
		case "6":
			a.editLimit()
		case "7":
			a.editTopics()
		case "8":
			a.toggleGrouping()
		case "9":
			a.showHelp()
		case "g":
			a.changeGatewayURL()
		case "0", "q", "quit":
			return nil
		default:
			a.println(errorStyle.Render("Invalid choice"))
		}
	}
}

func (a *App) showMenu() {
	domains := a.form.Domains
	if domains == "" {
		domains = dimStyle.Render("none")
	}
	selected := "all"
	if len(a.form.Selected) > 0 {
		selected = strings.Join(a.form.Selected, ", ")
	}
	grouping := "off"
	if a.form.Grouped {
		grouping = "on"
	}

	a.println("")
	a.println(headerStyle.Render("Search Parameters"))
	a.println(fmt.Sprintf("  Query:    %s", a.form.Query))
	a.println(fmt.Sprintf("  Dates:    %s to %s", a.form.From, a.form.To))
	a.println(fmt.Sprintf("  Domains:  %s", domains))
	a.println(fmt.Sprintf("  Limit:    %d", a.form.Limit))
	a.println(fmt.Sprintf("  Topics:   %s", selected))
	a.println(fmt.Sprintf("  Grouping: %s", grouping))
	a.println("")
	a.println("1. Search")
	a.println("2. Count matches")
	a.println("3. Edit query")
	a.println("4. Edit date range")
	a.println("5. Edit domains filter")
	a.println("6. Set result limit")
	a.println("7. Choose topic filters")
	a.println("8. Toggle group by topic")
	a.println("9. Help")
	a.println("g. Change gateway URL")
	a.println("0. Quit")
}

func (a *App) runSearch(ctx context.Context) {
	params, ok := a.validateForm()
	if !ok {
		return
	}

	a.println(dimStyle.Render("Searching for articles..."))
	reply, err := a.gateway.Search(ctx, params)
	if err != nil {
		a.showTransportError(err)
		return
	}
	if !reply.OK {
		a.println(errorStyle.Render("API Error: " + reply.ErrorMessage()))
		return
	}

	a.logger.Debug("search completed",
		zap.Int("total", reply.TotalResults),
		zap.Int("returned", len(reply.Articles)))

	a.renderResults(reply)
}

func (a *App) runCount(ctx context.Context) {
	params, ok := a.validateForm()
	if !ok {
		return
	}

	reply, err := a.gateway.Count(ctx, params)
	if err != nil {
		a.showTransportError(err)
		return
	}
	if !reply.OK {
		a.println(errorStyle.Render("API Error: " + reply.ErrorMessage()))
		return
	}

	a.println(successStyle.Render(fmt.Sprintf("Matching articles: %s (from %s to %s)",
		formatCount(reply.TotalResults), reply.From, reply.To)))
}

func (a *App) validateForm() (domain.SearchParams, bool) {
	params := domain.SearchParams{
		Query:   a.form.Query,
		From:    a.form.From,
		To:      a.form.To,
		Domains: a.form.Domains,
		Limit:   a.form.Limit,
	}
	if err := params.Validate(); err != nil {
		a.println(errorStyle.Render(validationMessage(err)))
		return domain.SearchParams{}, false
	}
	params.Sanitize()
	return params, true
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return "Please enter a search query."
	case errors.Is(err, domain.ErrMissingDates):
		return "Please select both a start and end date."
	case errors.Is(err, domain.ErrBadFromDate):
		return "Invalid start date. Expected YYYY-MM-DD."
	case errors.Is(err, domain.ErrBadToDate):
		return "Invalid end date. Expected YYYY-MM-DD."
	case errors.Is(err, domain.ErrDateOrder):
		return "Start date must not be after end date."
	default:
		return err.Error()
	}
}

func (a *App) showTransportError(err error) {
	switch {
	case errors.Is(err, backend.ErrGatewayUnreachable):
		a.println(errorStyle.Render(fmt.Sprintf(
			"Could not connect to the gateway at %s. Make sure the gateway server is running.",
			a.gateway.BaseURL())))
	case errors.Is(err, backend.ErrGatewayTimeout):
		a.println(errorStyle.Render("Request timed out. Please try again."))
	default:
		a.println(errorStyle.Render("Error: " + err.Error()))
	}
}

func (a *App) renderResults(reply *backend.SearchReply) {
	a.println(successStyle.Render(fmt.Sprintf("Total Results Found: %s (from %s to %s)",
		formatCount(reply.TotalResults), reply.From, reply.To)))

	if len(reply.Articles) == 0 {
		a.println(dimStyle.Render("No articles found for this query and date range."))
		return
	}

	classified := classifyAll(a.classifier, reply.Articles)
	visible := filterBySelected(classified, a.form.Selected)
	if len(visible) == 0 {
		a.println(dimStyle.Render("No articles match the selected topics."))
		return
	}

	a.println(headerStyle.Render(fmt.Sprintf("Showing %d article(s)", len(visible))))

	if a.form.Grouped {
		groups := groupByTopic(visible, a.form.Selected)
		a.renderGroups(groups)
		a.expandLoopGrouped(groups)
		return
	}

	a.renderFlat(visible)
	a.expandLoopFlat(visible)
}

func (a *App) renderFlat(articles []classifiedArticle) {
	for i, art := range articles {
		a.println(collapsedLine(i+1, art.ArticleSummary))
	}
}

func (a *App) renderGroups(groups []topicGroup) {
	for gi, g := range groups {
		a.println(groupStyle.Render(fmt.Sprintf("[%d] %s (%d)", gi+1, g.Name, len(g.Articles))))
		for i, art := range g.Articles {
			a.println("  " + collapsedLine(i+1, art.ArticleSummary))
		}
	}
}

func (a *App) expandLoopFlat(articles []classifiedArticle) {
	for {
		line, err := a.readLine("\nArticle number to expand (blank to go back): ")
		if err != nil || line == "" {
			return
		}
		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(articles) {
			a.println(errorStyle.Render("Invalid article number"))
			continue
		}
		a.println(expandedView(articles[n-1]))
	}
}

func (a *App) expandLoopGrouped(groups []topicGroup) {
	for {
		line, err := a.readLine("\nArticle to expand as <group> <number> (blank to go back): ")
		if err != nil || line == "" {
			return
		}
		g, n, ok := parseGroupRef(line)
		if !ok || g < 1 || g > len(groups) || n < 1 || n > len(groups[g-1].Articles) {
			a.println(errorStyle.Render("Invalid article reference"))
			continue
		}
		a.println(expandedView(groups[g-1].Articles[n-1]))
	}
}

// parseGroupRef accepts "2 3" and "2.3" as group 2, article 3.
func parseGroupRef(s string) (group, item int, ok bool) {
	s = strings.TrimSpace(s)

	var parts []string
	if strings.Contains(s, ".") {
		parts = strings.SplitN(s, ".", 2)
	} else {
		parts = strings.Fields(s)
	}
	if len(parts) != 2 {
		return 0, 0, false
	}

	g, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	n, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return g, n, true
}

func (a *App) editQuery() {
	line, err := a.readLine(fmt.Sprintf("Query [%s]: ", a.form.Query))
	if err != nil || line == "" {
		return
	}
	a.form.Query = line
}

func (a *App) editDates() {
	from, err := a.readLine(fmt.Sprintf("Start date (YYYY-MM-DD) [%s]: ", a.form.From))
	if err != nil {
		return
	}
	if from != "" {
		if !domain.ValidDate(from) {
			a.println(errorStyle.Render("Invalid start date. Expected YYYY-MM-DD."))
			return
		}
		a.form.From = from
	}

	to, err := a.readLine(fmt.Sprintf("End date (YYYY-MM-DD) [%s]: ", a.form.To))
	if err != nil {
		return
	}
	if to != "" {
		if !domain.ValidDate(to) {
			a.println(errorStyle.Render("Invalid end date. Expected YYYY-MM-DD."))
			return
		}
		a.form.To = to
	}
}

func (a *App) editDomains() {
	current := a.form.Domains
	if current == "" {
		current = domainsPlaceholder
	}
	line, err := a.readLine(fmt.Sprintf("Domains, comma-separated (blank keeps current, '-' clears) [%s]: ", current))
	if err != nil || line == "" {
		return
	}
	if line == "-" {
		a.form.Domains = ""
		return
	}
	a.form.Domains = line
}

func (a *App) editLimit() {
	line, err := a.readLine(fmt.Sprintf("Number of results (1-%d) [%d]: ", maxResults, a.form.Limit))
	if err != nil || line == "" {
		return
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		a.println(errorStyle.Render("Invalid limit. Expected an integer."))
		return
	}
	if n < 1 {
		n = 1
	}
	if n > maxResults {
		n = maxResults
	}
	a.form.Limit = n
}

func (a *App) editTopics() {
	names := append(a.table.Names(), topics.Uncategorized)

	a.println(headerStyle.Render("Topics"))
	for i, name := range names {
		marker := " "
		if slices.Contains(a.form.Selected, name) {
			marker = "*"
		}
		a.println(fmt.Sprintf("%s %2d. %s", marker, i+1, name))
	}

	line, err := a.readLine("Topic numbers separated by commas (blank = show all): ")
	if err != nil {
		return
	}
	if line == "" {
		a.form.Selected = nil
		return
	}

	var selected []string
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, convErr := strconv.Atoi(part)
		if convErr != nil || n < 1 || n > len(names) {
			a.println(errorStyle.Render("Invalid topic number: " + part))
			return
		}
		if !slices.Contains(selected, names[n-1]) {
			selected = append(selected, names[n-1])
		}
	}
	a.form.Selected = selected
}

func (a *App) toggleGrouping() {
	a.form.Grouped = !a.form.Grouped
	if a.form.Grouped {
		a.println(successStyle.Render("Grouping by topic is on"))
	} else {
		a.println(dimStyle.Render("Grouping by topic is off"))
	}
}

func (a *App) showHelp() {
	a.println(headerStyle.Render("Example Queries"))
	a.println("  healthcare AND medicare")
	a.println("  (hospital OR clinic) AND staffing")
	a.println(`  "artificial intelligence"`)
	a.println("  technology OR innovation")
	a.println("")
	a.println(headerStyle.Render("Tips"))
	a.println("  Use AND to require both terms")
	a.println("  Use OR for either term")
	a.println("  Use quotes for exact phrases")
	a.println("  Add domains to filter by source")
	a.println("  Select a date range to search across multiple days")
}

func (a *App) promptGatewayURL() {
	line, err := a.readLine(fmt.Sprintf("Gateway URL [%s]: ", defaultGatewayURL))
	if err != nil || line == "" {
		a.gateway.SetBaseURL(defaultGatewayURL)
		return
	}
	a.gateway.SetBaseURL(line)
}

func (a *App) changeGatewayURL() {
	line, err := a.readLine(fmt.Sprintf("Gateway URL [%s]: ", a.gateway.BaseURL()))
	if err != nil || line == "" {
		return
	}
	a.gateway.SetBaseURL(line)
	a.println(successStyle.Render("Gateway URL set to " + a.gateway.BaseURL()))
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, promptStyle.Render(prompt))
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}
