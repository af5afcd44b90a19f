package adminapi

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tilazone/tilazone/internal/webserver"
)

type mediaItem struct {
	url   string
	video bool
}

type mediaResponse struct {
	Images []string `json:"images"`
	Videos []string `json:"videos"`
}

func registerMediaRoutes() {
	webserver.AdminPOST("/media", uploadMedia)
}

// uploadMedia converts an upload batch to inline data URLs. Files are
// classified image or video by their declared content type. All
// conversions must finish before anything is returned, so a partial
// batch is never observed.
func uploadMedia(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse upload", err.Error())
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No files in upload", nil)
	}

	workers := GetApp(c).Config().Storefront.MediaWorkers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "MEDIA_ERROR", "Failed to start conversion pool", err.Error())
	}
	defer pool.Release()

	results := make([]mediaItem, len(files))
	var g errgroup.Group
	for i, fh := range files {
		i, fh := i, fh
		g.Go(func() error {
			done := make(chan error, 1)
			if err := pool.Submit(func() {
				done <- encodeUpload(fh, &results[i])
			}); err != nil {
				return err
			}
			return <-done
		})
	}
	if err := g.Wait(); err != nil {
		return fail(c, http.StatusInternalServerError, "MEDIA_ERROR", "Failed to convert upload batch", err.Error())
	}

	resp := mediaResponse{Images: []string{}, Videos: []string{}}
	for _, item := range results {
		if item.video {
			resp.Videos = append(resp.Videos, item.url)
		} else {
			resp.Images = append(resp.Images, item.url)
		}
	}
	return ok(c, resp)
}

func encodeUpload(fh *multipart.FileHeader, out *mediaItem) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	out.url = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	out.video = strings.HasPrefix(contentType, "video/")
	return nil
}
