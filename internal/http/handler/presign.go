package handler

import (
	"github.com/gofiber/fiber/v2"

	"drives3/internal/http/middleware"
	"drives3/internal/service"
)

// IssuePresign godoc
// @Summary      Create a public link
// @Description  Replaces any previous link for the object.
// @Tags         presign
// @Produce      json
// @Security     BearerAuth
// @Param        bucket  path  string  true  "bucket name"
// @Param        object  path  string  true  "stored object name"
// @Success      200  {object}  service.PresignedURL
// @Failure      404  {object}  errorPayload
// @Router       /presign/{bucket}/{object} [post]
func IssuePresign(svc service.PresignService, publicBaseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		base := publicBaseURL
		if base == "" {
			base = c.BaseURL()
		}
		res, err := svc.IssueToken(c.UserContext(), middleware.CurrentUser(c), pathParam(c, "bucket"), pathParam(c, "object"), base)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// RevokePresign godoc
// @Summary   Revoke a public link
// @Tags      presign
// @Produce   json
// @Security  BearerAuth
// @Param     bucket  path  string  true  "bucket name"
// @Param     object  path  string  true  "stored object name"
// @Success   200  {object}  map[string]string
// @Failure   404  {object}  errorPayload
// @Router    /presign/{bucket}/{object} [delete]
func RevokePresign(svc service.PresignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.RevokeToken(c.UserContext(), middleware.CurrentUser(c), pathParam(c, "bucket"), pathParam(c, "object")); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Public token revoked successfully"})
	}
}

// ServePublic godoc
// @Summary   Download through a public link
// @Tags      presign
// @Produce   octet-stream
// @Param     bucket    path   string  true   "bucket name"
// @Param     object    path   string  true   "stored object name"
// @Param     token     query  string  true   "public token"
// @Param     download  query  bool    false  "send as attachment"
// @Success   200
// @Failure   401  {object}  errorPayload
// @Failure   403  {object}  errorPayload
// @Failure   404  {object}  errorPayload
// @Router    /public/{bucket}/{object} [get]
func ServePublic(svc service.PresignService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dl, err := svc.ServePublic(c.UserContext(), pathParam(c, "bucket"), pathParam(c, "object"), c.Query("token"), c.Query("download") == "true")
		if err != nil {
			return writeServiceError(c, err)
		}
		return sendDownload(c, dl)
	}
}
