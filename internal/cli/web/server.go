package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/report"
	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/util"
)

// content holds our static content.
//
//go:embed templates/*
var content embed.FS

const sessionCookie = "expenselens_session"

// Answerer is what the dashboard needs from the assistant.
type Answerer interface {
	Answer(ctx context.Context, query string) string
}

// conversation is the per-session last question/answer cache. Nothing
// else is cached; the dataset is reloaded per request.
type conversation struct {
	Question string
	Answer   string
}

type server struct {
	store   storage.Storage
	bot     Answerer
	budgets map[string]int64
	logger  *logger.Logger
	tmpl    *template.Template

	mu       sync.Mutex
	sessions map[string]conversation
}

func newServer(store storage.Storage, bot Answerer, budgets map[string]int64, log *logger.Logger) (*server, error) {
	tmpl, err := template.ParseFS(content, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("unable to parse templates: %w", err)
	}

	return &server{
		store:    store,
		bot:      bot,
		budgets:  budgets,
		logger:   log,
		tmpl:     tmpl,
		sessions: map[string]conversation{},
	}, nil
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.dashboardHandler)
	mux.HandleFunc("POST /ask", s.askHandler)
	mux.HandleFunc("POST /expenses", s.addExpenseHandler)
	return mux
}

type rowView struct {
	Date     string
	Category string
	Amount   string
	Note     string
}

type categoryView struct {
	Name  string
	Total string
}

type monthView struct {
	Name  string
	Total string
}

type dashboardView struct {
	Total      string
	Empty      bool
	Top        []categoryView
	Monthly    []monthView
	Alerts     []string
	Recurring  []string
	LastRows   []rowView
	Question   string
	Answer     string
	FormError  string
	Categories []string
}

const dashboardPreviewRows = 5

func (s *server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)

	records, err := s.store.ListExpenses(r.Context())
	if err != nil {
		s.logger.Error("unable to load expenses", "error", err)
		http.Error(w, "unable to load expenses", http.StatusInternalServerError)
		return
	}

	view := s.buildView(records)

	s.mu.Lock()
	if conv, ok := s.sessions[sessionID]; ok {
		view.Question = conv.Question
		view.Answer = conv.Answer
	}
	s.mu.Unlock()

	if formError := r.URL.Query().Get("error"); formError != "" {
		view.FormError = formError
	}

	if err = s.tmpl.ExecuteTemplate(w, "dashboard.tmpl", view); err != nil {
		s.logger.Error("unable to render dashboard", "error", err)
	}
}

func (s *server) buildView(records []expense.Record) dashboardView {
	view := dashboardView{
		Total: util.FormatMoney(report.TotalMinor(records)),
		Empty: len(records) == 0,
	}

	for _, ct := range report.TopCategories(records, dashboardPreviewRows) {
		view.Top = append(view.Top, categoryView{Name: ct.Name, Total: util.FormatMoney(ct.TotalMinor)})
		view.Categories = append(view.Categories, ct.Name)
	}

	for _, mt := range report.MonthlyTotals(records) {
		view.Monthly = append(view.Monthly, monthView{
			Name:  fmt.Sprintf("%s %d", mt.Month.Month().String(), mt.Month.Year()),
			Total: util.FormatMoney(mt.TotalMinor),
		})
	}

	for _, alert := range report.BudgetAlerts(records, s.budgets) {
		view.Alerts = append(view.Alerts, fmt.Sprintf("%s exceeded the limit of ₹%s (Spent: ₹%s)",
			alert.Category, util.FormatMoney(alert.LimitMinor), util.FormatMoney(alert.SpentMinor)))
	}

	for _, rec := range report.RecurringExpenses(records) {
		view.Recurring = append(view.Recurring, fmt.Sprintf("%s ₹%s x%d",
			rec.Category, util.FormatMoney(rec.AmountMinor), rec.Count))
	}

	start := len(records) - dashboardPreviewRows
	if start < 0 {
		start = 0
	}
	for _, rec := range records[start:] {
		view.LastRows = append(view.LastRows, rowView{
			Date:     rec.DateString(),
			Category: rec.Category,
			Amount:   util.FormatMoney(rec.AmountMinor),
			Note:     rec.Note,
		})
	}

	return view
}

func (s *server) askHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)

	question := r.FormValue("question")
	answer := s.bot.Answer(r.Context(), question)

	s.mu.Lock()
	s.sessions[sessionID] = conversation{Question: question, Answer: answer}
	s.mu.Unlock()

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) addExpenseHandler(w http.ResponseWriter, r *http.Request) {
	amount, err := expense.ParseAmount(r.FormValue("amount"))
	if err != nil || amount < 0 {
		http.Redirect(w, r, "/?error=invalid+amount", http.StatusSeeOther)
		return
	}

	date := expense.ParseDate(r.FormValue("date"))
	if date == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		date = &today
	}

	record := expense.Record{
		Date:        date,
		Category:    r.FormValue("category"),
		AmountMinor: amount,
		Note:        r.FormValue("note"),
	}

	if err = s.store.AppendExpense(r.Context(), record); err != nil {
		s.logger.Error("unable to save expense", "error", err)
		http.Redirect(w, r, "/?error=unable+to+save+expense", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
