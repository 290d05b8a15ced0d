package handler

import (
	"github.com/gofiber/fiber/v2"

	"drives3/internal/http/middleware"
	"drives3/internal/service"
)

// ListObjects godoc
// @Summary   List objects in a bucket
// @Tags      objects
// @Produce   json
// @Security  BearerAuth
// @Param     bucket  path  string  true  "bucket name"
// @Success   200  {object}  service.ObjectListing
// @Failure   404  {object}  errorPayload
// @Router    /{bucket} [get]
func ListObjects(svc service.ObjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		listing, err := svc.ListObjects(c.UserContext(), middleware.CurrentUser(c), pathParam(c, "bucket"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(listing)
	}
}

// PutObject godoc
// @Summary      Upload an object
// @Description  Stored under an obfuscated name that keeps the extension of {object}.
// @Tags         objects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        bucket  path      string  true  "bucket name"
// @Param        object  path      string  true  "requested object name"
// @Param        file    formData  file    true  "content"
// @Success      200  {object}  service.PutResult
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      502  {object}  errorPayload
// @Router       /{bucket}/{object} [put]
func PutObject(svc service.ObjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Removes fasthttp's temporary upload files on every path.
		defer c.Request().RemoveMultipartFormFiles()

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}

		res, err := svc.PutObject(c.UserContext(), middleware.CurrentUser(c), pathParam(c, "bucket"), pathParam(c, "object"), service.Upload{
			Content:      f,
			MimeType:     fh.Header.Get("Content-Type"),
			OriginalName: fh.Filename,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetObject godoc
// @Summary   Stream an object
// @Tags      objects
// @Produce   octet-stream
// @Security  BearerAuth
// @Param     bucket  path  string  true  "bucket name"
// @Param     object  path  string  true  "stored object name"
// @Success   200
// @Failure   404  {object}  errorPayload
// @Failure   502  {object}  errorPayload
// @Router    /{bucket}/{object} [get]
func GetObject(svc service.ObjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dl, err := svc.GetObject(c.UserContext(), middleware.CurrentUser(c), pathParam(c, "bucket"), pathParam(c, "object"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendDownload(c, dl)
	}
}

// DeleteObject godoc
// @Summary   Delete an object
// @Tags      objects
// @Produce   json
// @Security  BearerAuth
// @Param     bucket  path  string  true  "bucket name"
// @Param     object  path  string  true  "stored object name"
// @Success   200  {object}  map[string]string
// @Failure   404  {object}  errorPayload
// @Failure   502  {object}  errorPayload
// @Router    /{bucket}/{object} [delete]
func DeleteObject(svc service.ObjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteObject(c.UserContext(), middleware.CurrentUser(c), pathParam(c, "bucket"), pathParam(c, "object")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "File deleted successfully"})
	}
}

// sendDownload streams dl to the client. Fiber closes the body when done.
func sendDownload(c *fiber.Ctx, dl *service.Download) error {
	c.Set(fiber.HeaderContentType, dl.ContentType)
	c.Set(fiber.HeaderContentDisposition, dl.ContentDisposition())
	return c.SendStream(dl.Body)
}
