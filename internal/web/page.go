// Package web serves the server-rendered transaction page.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-tracker/internal/export"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/viewer"
)

//go:embed templates/*.html
var templateFS embed.FS

const pagePath = "/transactions"

type accountLister interface {
	ListAccounts(ctx context.Context, owner uuid.UUID) ([]service.Account, error)
}

type categoryLister interface {
	ListCategories(ctx context.Context, owner uuid.UUID, typ *service.TransactionType) ([]service.Category, error)
	ListSubcategories(ctx context.Context, owner uuid.UUID, categoryID *uuid.UUID) ([]service.Subcategory, error)
}

type sessionProvider interface {
	Get(ctx context.Context, owner uuid.UUID) (*viewer.Session, error)
}

type ownerVerifier interface {
	OwnerFromRequest(req *http.Request) (uuid.UUID, error)
}

type editView struct {
	ID   string
	Form viewer.EditForm
}

type pageData struct {
	Rows          []rowView
	Summary       summaryView
	Pagination    viewer.PaginationModel
	Filters       viewer.FilterInput
	Accounts      []service.Account
	Categories    []service.Category
	Subcategories []service.Subcategory
	Notifications []viewer.Notification
	Editing       *editView
}

// Page renders the transaction list of the signed-in owner and handles its form posts.
// Every post redirects back to the page, which shows the outcome as a notification.
type Page struct {
	Accounts   accountLister
	Categories categoryLister
	Sessions   sessionProvider
	Verifier   ownerVerifier
	LoginURL   string
	Logger     *logrus.Logger

	tmpl *template.Template
	now  func() time.Time
}

func NewPage(accounts accountLister, categories categoryLister, sessions sessionProvider, verifier ownerVerifier, loginURL string, logger *logrus.Logger) *Page {
	return &Page{
		Accounts:   accounts,
		Categories: categories,
		Sessions:   sessions,
		Verifier:   verifier,
		LoginURL:   loginURL,
		Logger:     logger,
		tmpl:       template.Must(template.ParseFS(templateFS, "templates/*.html")),
		now:        time.Now,
	}
}

// Register mounts the page routes on mux.
func (p *Page) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+pagePath, logging.LoggingWrapper("TransactionsPage", p.Logger, p.authenticated(p.show)))
	mux.HandleFunc("GET "+pagePath+"/export", logging.LoggingWrapper("TransactionsExport", p.Logger, p.authenticated(p.export)))
	mux.HandleFunc("POST "+pagePath+"/filter", logging.LoggingWrapper("TransactionsFilter", p.Logger, p.authenticated(p.filter)))
	mux.HandleFunc("POST "+pagePath+"/clear", logging.LoggingWrapper("TransactionsClear", p.Logger, p.authenticated(p.clear)))
	mux.HandleFunc("POST "+pagePath+"/{id}/delete", logging.LoggingWrapper("TransactionsDelete", p.Logger, p.authenticated(p.delete)))
	mux.HandleFunc("POST "+pagePath+"/{id}/edit", logging.LoggingWrapper("TransactionsEdit", p.Logger, p.authenticated(p.edit)))
}

type ownerHandler func(w http.ResponseWriter, req *http.Request, logData *logging.LogData, owner uuid.UUID) error

// authenticated redirects to the login page unless the request carries a valid token.
func (p *Page) authenticated(next ownerHandler) func(http.ResponseWriter, *http.Request, *logging.LogData) error {
	return func(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
		owner, err := p.Verifier.OwnerFromRequest(req)
		if err != nil {
			logData.AddData("authError", err.Error())
			http.Redirect(w, req, p.LoginURL, http.StatusSeeOther)
			return nil
		}
		logData.AddData("owner", owner.String())
		return next(w, req, logData, owner)
	}
}

func (p *Page) backToPage(w http.ResponseWriter, req *http.Request) {
	http.Redirect(w, req, pagePath, http.StatusSeeOther)
}

// actionResult redirects back to the page. Validation failures are already shown to the user
// and are not reported as handler errors.
func (p *Page) actionResult(w http.ResponseWriter, req *http.Request, err error) error {
	p.backToPage(w, req)
	if err == nil || isValidation(err) {
		return nil
	}
	return err
}

func isValidation(err error) bool {
	var formErr *viewer.ValidationError
	var serviceErr *service.ValidationError
	return errors.As(err, &formErr) || errors.As(err, &serviceErr)
}

func (p *Page) show(w http.ResponseWriter, req *http.Request, logData *logging.LogData, owner uuid.UUID) error {
	ctx := req.Context()
	var data pageData
	var session *viewer.Session

	stopTimer := logData.AddTiming("loadPageMs")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		session, err = p.Sessions.Get(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		data.Accounts, err = p.Accounts.ListAccounts(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		data.Categories, err = p.Categories.ListCategories(gctx, owner, nil)
		return err
	})
	g.Go(func() error {
		var err error
		data.Subcategories, err = p.Categories.ListSubcategories(gctx, owner, nil)
		return err
	})
	err := g.Wait()
	stopTimer()
	if err != nil {
		http.Error(w, viewer.MsgLoadFailed, http.StatusInternalServerError)
		return fmt.Errorf("load page: %w", err)
	}

	query := req.URL.Query()
	if raw := query.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			session.Engine.GoToPage(n)
		}
	}
	if raw := query.Get("edit"); raw != "" {
		if id, err := uuid.FromString(raw); err == nil {
			if record, ok := session.Engine.Lookup(id); ok {
				data.Editing = &editView{ID: id.String(), Form: viewer.EditFormFor(record)}
			}
		}
	}

	state := session.View.Snapshot()
	data.Rows = make([]rowView, len(state.Rows))
	for i, record := range state.Rows {
		data.Rows[i] = rowFor(record)
	}
	data.Summary = summaryFor(state.Summary)
	data.Pagination = state.Pagination
	data.Notifications = state.Notifications
	data.Filters = viewer.InputFromCriteria(session.Engine.Criteria())

	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "transactions.html", data); err != nil {
		http.Error(w, viewer.MsgLoadFailed, http.StatusInternalServerError)
		return fmt.Errorf("render page: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}

func (p *Page) filter(w http.ResponseWriter, req *http.Request, _ *logging.LogData, owner uuid.UUID) error {
	session, err := p.Sessions.Get(req.Context(), owner)
	if err != nil {
		return p.actionResult(w, req, err)
	}

	return p.actionResult(w, req, session.Engine.ApplyFilters(req.Context(), viewer.FilterInput{
		AccountID:  req.FormValue("account"),
		CategoryID: req.FormValue("category"),
		Type:       req.FormValue("type"),
		DateFrom:   req.FormValue("dateFrom"),
		DateTo:     req.FormValue("dateTo"),
	}))
}

func (p *Page) clear(w http.ResponseWriter, req *http.Request, _ *logging.LogData, owner uuid.UUID) error {
	session, err := p.Sessions.Get(req.Context(), owner)
	if err != nil {
		return p.actionResult(w, req, err)
	}
	return p.actionResult(w, req, session.Engine.ClearFilters(req.Context()))
}

func (p *Page) delete(w http.ResponseWriter, req *http.Request, logData *logging.LogData, owner uuid.UUID) error {
	id, err := uuid.FromString(req.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return nil
	}
	logData.AddData("transactionID", id.String())

	session, err := p.Sessions.Get(req.Context(), owner)
	if err != nil {
		return p.actionResult(w, req, err)
	}
	return p.actionResult(w, req, session.Engine.Delete(req.Context(), id))
}

func (p *Page) edit(w http.ResponseWriter, req *http.Request, logData *logging.LogData, owner uuid.UUID) error {
	id, err := uuid.FromString(req.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return nil
	}
	logData.AddData("transactionID", id.String())

	session, err := p.Sessions.Get(req.Context(), owner)
	if err != nil {
		return p.actionResult(w, req, err)
	}
	return p.actionResult(w, req, session.Engine.Edit(req.Context(), id, viewer.EditForm{
		AccountID:     req.FormValue("account"),
		Type:          req.FormValue("type"),
		CategoryID:    req.FormValue("category"),
		SubcategoryID: req.FormValue("subcategory"),
		Amount:        req.FormValue("amount"),
		Description:   req.FormValue("description"),
		Date:          req.FormValue("date"),
	}))
}

func (p *Page) export(w http.ResponseWriter, req *http.Request, logData *logging.LogData, owner uuid.UUID) error {
	session, err := p.Sessions.Get(req.Context(), owner)
	if err != nil {
		return p.actionResult(w, req, err)
	}

	// An empty export queues a notification for the page instead.
	rows, err := session.Engine.Export()
	if err != nil {
		p.backToPage(w, req)
		return nil
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, rows); err != nil {
		http.Error(w, "Error exporting transactions.", http.StatusInternalServerError)
		return err
	}
	logData.AddData("exportRows", len(rows))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", export.ContentDisposition(p.now()))
	_, err = buf.WriteTo(w)
	return err
}
