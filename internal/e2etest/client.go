package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/dailytake/internal/errors"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

// maxGameSteps bounds PlayDailyGame in case the server keeps serving the same question.
const maxGameSteps = 20

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates an HTTP client that keeps the session and CSRF cookies of a single player.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
		doc  *goquery.Document
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// GetFragment fetches an htmx fragment the way htmx requests it and returns it as a goquery document.
func (c *Client) GetFragment(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
		doc  *goquery.Document
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	req.Header.Set("HX-Request", "true")
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if req, err = http.NewRequest(method, c.url+urlPath, body); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req.WithContext(ctx), nil
}

func (c *Client) extractCSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form")
	}
	return csrfToken, nil
}

// SubmitForm submits the form with action formActionURLPath found in doc and returns the response document.
//
// The form is submitted with the values a browser would send without user input, replaced by values where given.
func (c *Client) SubmitForm(
	ctx context.Context,
	doc *goquery.Document,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	var (
		csrfToken string
		err       error
	)
	if csrfToken, err = c.extractCSRFToken(doc, formActionURLPath); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	formData := formDefaults(doc.Find(fmt.Sprintf("form[action='%s']", formActionURLPath)))
	for key, vals := range values {
		formData[key] = append([]string(nil), vals...)
	}
	formData.Set("csrf_token", csrfToken)
	data := strings.NewReader(formData.Encode())

	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, data); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}

	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// PostJSON posts body encoded as JSON and returns the response. The caller closes the response body.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any) (*http.Response, error) {
	var (
		err     error
		payload []byte
		req     *http.Request
		resp    *http.Response
	)
	if payload, err = json.Marshal(body); err != nil {
		return nil, errors.Wrap(err, "marshal body")
	}
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, urlPath, bytes.NewReader(payload)); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	req.Header.Set("Content-Type", "application/json")
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// PlayDailyGame answers every question of the current daily game and returns the results page.
//
// answers maps question ids to the submitted values. An open question takes a single answer and a ranked question
// the full order. Questions without an entry keep the form defaults: an empty answer or the order shown on the page.
func (c *Client) PlayDailyGame(ctx context.Context, answers map[string][]string) (*goquery.Document, error) {
	const answerURLPath = "/play/answer"
	var (
		doc *goquery.Document
		err error
	)
	if doc, err = c.GetDoc(ctx, "/play"); err != nil {
		return nil, errors.Wrap(err, "get play page")
	}
	for range maxGameSteps {
		form := doc.Find(fmt.Sprintf("form[action='%s']", answerURLPath))
		if form.Length() == 0 {
			return doc, nil
		}
		questionID := form.Find("input[name=question_id]").AttrOr("value", "")
		values := neturl.Values{}
		if submitted, ok := answers[questionID]; ok {
			if form.Find("input[name=answer]").Length() > 0 {
				values["answer"] = submitted
			} else {
				values["order"] = submitted
			}
		}
		if doc, err = c.SubmitForm(ctx, doc, answerURLPath, values); err != nil {
			return nil, errors.Wrap(err, "submit answer", slog.String("questionID", questionID))
		}
	}
	return nil, errors.New("game did not finish", slog.Int("steps", maxGameSteps))
}

// formDefaults collects the values a browser would submit for the form without user input.
func formDefaults(form *goquery.Selection) neturl.Values {
	values := neturl.Values{}
	form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")
		value, _ := input.Attr("value")
		if name != "" && name != "csrf_token" {
			values.Add(name, value)
		}
	})
	form.Find("input[type=text]").Each(func(_ int, input *goquery.Selection) {
		name, _ := input.Attr("name")
		value, _ := input.Attr("value")
		if name != "" {
			values.Add(name, value)
		}
	})
	form.Find("select").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		value, _ := sel.Find("option[selected]").First().Attr("value")
		if name != "" {
			values.Add(name, value)
		}
	})
	return values
}
