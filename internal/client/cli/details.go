package cli

import (
	"context"
	"io"
	"strconv"

	"github.com/dmitrijs2005/diradmin/internal/client/client"
	"github.com/dmitrijs2005/diradmin/internal/logging"
)

const (
	msgDetailsLoading = "Loading user details..."
	msgDetailsFailed  = "Failed to fetch user details."
)

func showDetails(ctx context.Context, api client.Client, out io.Writer, log logging.Logger, id int) error {
	renderMuted(out, msgDetailsLoading)

	u, err := api.GetUser(ctx, id)
	if err != nil {
		renderError(out, msgDetailsFailed)
		log.Error(ctx, "fetch user details", "id", id, "error", err)
		return err
	}

	renderHeading(out, u.FullName())
	renderLine(out, "Email:  %s", u.Email)
	if u.Avatar != "" {
		renderLine(out, "Avatar: %s", u.Avatar)
	}
	return nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
