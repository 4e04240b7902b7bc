package internal

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/flash"
	"github.com/derWhity/fyyur/internal/log"
)

// RecoverToHome is a middleware that turns a panic inside the endpoint into a redirect to the home page carrying an
// error notice
func RecoverToHome(next endpoint.Endpoint) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				ctxhelper.Logger(ctx).WithField(log.FldPanic, r).Error("Recovered from panic inside endpoint")
				response = redirectHome(flash.Error("An unexpected error occurred. Please try again later."))
				err = nil
			}
		}()
		return next(ctx, request)
	}
}
