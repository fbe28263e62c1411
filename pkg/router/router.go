package router

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/xcontext"
)

// HandlerFunc is the shape of every endpoint handler. The request struct is
// bound from the query string on GET and from the JSON body on POST.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context; a
// returned error aborts the request with an error response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, for logging and
// metrics. The handler error, if any, is available via xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux
	ctx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a Router on top of a base context which must already carry the
// database, configs, and logger.
func New(ctx context.Context) *Router {
	return &Router{mux: http.NewServeMux(), ctx: ctx}
}

// Branch creates a Router sharing the same mux but with an independent
// middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		ctx:     r.ctx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(router.ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		if req.Method == http.MethodOptions {
			// Preflight requests get the middleware chain (cors headers) but
			// no handler.
			for _, m := range router.befores {
				if newCtx, err := m(ctx); err == nil {
					ctx = newCtx
				}
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		ctx = func() context.Context {
			if req.Method != method {
				return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method))
			}

			for _, m := range router.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}
				ctx = newCtx
			}

			var reqObj Request
			if err := bindRequest(req, method, &reqObj); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			}

			resp, err := handler(ctx, &reqObj)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			for _, m := range router.afters {
				newCtx, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}
				ctx = newCtx
			}

			if err := WriteJson(w, newResponse(resp)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
				return xcontext.WithError(ctx, errorx.New(errorx.BadResponse, "Cannot write the response"))
			}

			return ctx
		}()

		if err := xcontext.Error(ctx); err != nil {
			if err := WriteJson(w, newErrorResponse(err)); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", err)
			}
		}

		for _, c := range router.closers {
			c(ctx)
		}
	}
}

// bindRequest fills the request struct from the query string on GET and from
// the JSON body otherwise. Query binding follows the json tags and supports
// the scalar kinds the models use.
func bindRequest(req *http.Request, method string, obj any) error {
	if method != http.MethodGet {
		return json.NewDecoder(req.Body).Decode(obj)
	}

	v := reflect.ValueOf(obj).Elem()
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("json")
		queryVal := req.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(queryVal)

		case reflect.Int, reflect.Int64:
			val, err := strconv.ParseInt(queryVal, 10, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetInt(val)

		case reflect.Float64:
			val, err := strconv.ParseFloat(queryVal, 64)
			if err != nil {
				return err
			}
			v.Field(i).SetFloat(val)

		case reflect.Bool:
			val, err := strconv.ParseBool(queryVal)
			if err != nil {
				return err
			}
			v.Field(i).SetBool(val)
		}
	}

	return nil
}
