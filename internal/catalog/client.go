// Package catalog is the HTTP client of the product collection API.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

const (
	collectionPath = "/api/products"
	itemPath       = "/api/products/{id}"

	// HeaderAPIKey carries the API key on mutating calls.
	HeaderAPIKey = "api_key"
)

// StatusError is returned for any non-2xx response. The body is not
// interpreted.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d %s",
		e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

// Config configures a Client.
type Config struct {
	// BaseURL is the scheme and host of the catalog API.
	BaseURL string
	// APIKey is sent in the api_key header when set.
	APIKey string
	// Timeout bounds every call. Zero means no timeout.
	Timeout time.Duration
}

// Client issues list, create, replace and delete calls against
// /api/products. It never retries.
type Client struct {
	http   *resty.Client
	tracer trace.Tracer
}

// New returns a Client. Outgoing requests are traced with tp.
func New(cfg Config, tp trace.TracerProvider) *Client {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport, otelhttp.WithTracerProvider(tp))).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	if cfg.APIKey != "" {
		c.SetHeader(HeaderAPIKey, cfg.APIKey)
	}
	return &Client{
		http:   c,
		tracer: tp.Tracer("github.com/xenking/budogu-admin/internal/catalog"),
	}
}

// ListProducts returns the collection in server order.
func (c *Client) ListProducts(ctx context.Context) (_ []product.Product, rerr error) {
	ctx, span := c.tracer.Start(ctx, "catalog.ListProducts")
	defer func() { end(span, rerr) }()

	resp, err := c.http.R().SetContext(ctx).Get(collectionPath)
	if err := check(resp, err); err != nil {
		return nil, err
	}
	products, err := product.DecodeList(jx.DecodeBytes(resp.Body()))
	if err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	return products, nil
}

// CreateProduct posts in as a new product. The created record is decoded
// when the server echoes it; an empty or foreign body yields nil, and a
// foreign body is logged at debug level.
func (c *Client) CreateProduct(ctx context.Context, in product.Input) (_ *product.Product, rerr error) {
	ctx, span := c.tracer.Start(ctx, "catalog.CreateProduct")
	defer func() { end(span, rerr) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(encode(in)).
		Post(collectionPath)
	if err := check(resp, err); err != nil {
		return nil, err
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, nil
	}
	var created product.Product
	if err := created.Decode(jx.DecodeBytes(body)); err != nil {
		// The product was created; only the echo is unusable.
		zctx.From(ctx).Debug("Ignoring undecodable create response",
			zap.Int("status", resp.StatusCode()),
			zap.Error(err),
		)
		span.AddEvent("catalog.undecodable_response")
		return nil, nil
	}
	span.SetAttributes(attribute.Int64("catalog.product.id", created.ID))
	return &created, nil
}

// UpdateProduct replaces product id with in.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in product.Input) (rerr error) {
	ctx, span := c.tracer.Start(ctx, "catalog.UpdateProduct",
		trace.WithAttributes(attribute.Int64("catalog.product.id", id)))
	defer func() { end(span, rerr) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(encode(in)).
		Put(itemPath)
	return check(resp, err)
}

// DeleteProduct removes product id.
func (c *Client) DeleteProduct(ctx context.Context, id int64) (rerr error) {
	ctx, span := c.tracer.Start(ctx, "catalog.DeleteProduct",
		trace.WithAttributes(attribute.Int64("catalog.product.id", id)))
	defer func() { end(span, rerr) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(itemPath)
	return check(resp, err)
}

// Ping lists the collection and discards the result. It backs the readiness
// probe of the dashboard.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListProducts(ctx)
	return err
}

func encode(in product.Input) []byte {
	var e jx.Encoder
	in.Encode(&e)
	return e.Bytes()
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	if !resp.IsSuccess() {
		serr := &StatusError{
			Method:     resp.Request.Method,
			Path:       resp.Request.URL,
			StatusCode: resp.StatusCode(),
		}
		if raw := resp.Request.RawRequest; raw != nil {
			serr.Path = raw.URL.Path
		}
		return serr
	}
	return nil
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
