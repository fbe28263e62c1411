package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mtaadao/backend/internal/common"
	"github.com/mtaadao/backend/pkg/errorx"
	"github.com/mtaadao/backend/pkg/router"
	"github.com/mtaadao/backend/pkg/xcontext"
)

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		startTime := xcontext.StartTime(ctx)

		req := xcontext.HTTPRequest(ctx)
		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}
		path := req.URL.Path

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(path, fmt.Sprint(code)).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].
			WithLabelValues(path, fmt.Sprint(code)).
			Observe(time.Since(startTime).Seconds())
	}
}
