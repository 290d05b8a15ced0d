package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"drives3/internal/http/middleware"
	"drives3/internal/model"
	"drives3/internal/service"
)

// reservedBuckets would be shadowed by fixed routes.
var reservedBuckets = map[string]bool{
	"health":  true,
	"healthz": true,
	"metrics": true,
	"swagger": true,
	"oauth":   true,
	"public":  true,
	"presign": true,
}

// ListBuckets godoc
// @Summary   List buckets
// @Tags      buckets
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}   model.Bucket
// @Failure   401  {object}  errorPayload
// @Router    / [get]
func ListBuckets(svc service.BucketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		buckets, err := svc.ListBuckets(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		if buckets == nil {
			buckets = []model.Bucket{}
		}
		return c.JSON(buckets)
	}
}

// CreateBucket godoc
// @Summary   Create a bucket
// @Tags      buckets
// @Produce   json
// @Security  BearerAuth
// @Param     bucket  path  string  true  "bucket name"
// @Success   201  {object}  map[string]string
// @Failure   400  {object}  errorPayload
// @Failure   409  {object}  errorPayload
// @Failure   502  {object}  errorPayload
// @Router    /{bucket} [put]
func CreateBucket(svc service.BucketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := pathParam(c, "bucket")
		if reservedBuckets[name] {
			return writeError(c, fiber.StatusBadRequest, "RESERVED_NAME", fmt.Sprintf("bucket name %q is reserved", name))
		}

		b, err := svc.CreateBucket(c.UserContext(), middleware.CurrentUser(c), name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Bucket created", "id": b.ID})
	}
}

// DeleteBucket godoc
// @Summary      Delete a bucket and everything in it
// @Description  Drive deletions are best effort; failures are listed in the report.
// @Tags         buckets
// @Produce      json
// @Security     BearerAuth
// @Param        bucket  path  string  true  "bucket name"
// @Success      200  {object}  service.DeletionReport
// @Failure      404  {object}  errorPayload
// @Router       /{bucket} [delete]
func DeleteBucket(svc service.BucketService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := pathParam(c, "bucket")
		report, err := svc.DeleteBucket(c.UserContext(), middleware.CurrentUser(c), name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Bucket '%s' and all its files have been deleted.", name),
			"report":  report,
		})
	}
}
