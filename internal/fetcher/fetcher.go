package fetcher

import (
	"context"

	"github.com/rohmanhakim/site-word-scanner/pkg/failure"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
	) (FetchResult, failure.ClassifiedError)
}
