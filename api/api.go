package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	api_types "folio/api-types"
	"folio/internal/resolver"

	folio_errors "folio/internal"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func StartApi(port int, logger *logrus.Logger, r resolver.Resolver) error {
	router := gin.Default()

	router.Use(cors.Default())

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to folio"})
	})

	router.POST("/assets", func(c *gin.Context) {
		var req api_types.CreateAssetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
			return
		}
		resp, err := r.CreateAsset(req)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/assets", func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}
		resp, err := r.ListAssets(userID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/assets/:assetId", func(c *gin.Context) {
		assetID, ok := idFromParam(c, "assetId")
		if !ok {
			return
		}
		resp, err := r.GetAsset(assetID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.PUT("/assets/:assetId/prices", func(c *gin.Context) {
		assetID, ok := idFromParam(c, "assetId")
		if !ok {
			return
		}
		var req api_types.UpdatePricesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
			return
		}
		if err := r.UpdatePrices(assetID, req); err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": true})
	})

	router.DELETE("/assets/:assetId", func(c *gin.Context) {
		assetID, ok := idFromParam(c, "assetId")
		if !ok {
			return
		}
		if err := r.DeleteAsset(assetID); err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	})

	router.POST("/assets/:assetId/recalculate", func(c *gin.Context) {
		assetID, ok := idFromParam(c, "assetId")
		if !ok {
			return
		}
		resp, err := r.RecalculateAsset(assetID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.POST("/transactions", func(c *gin.Context) {
		var req api_types.AddTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
			return
		}
		resp, err := r.AddTransaction(req)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/transactions", func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}
		var assetID *uuid.UUID
		if raw := c.Query("assetId"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				returnErrorJsonCode(fmt.Errorf("invalid assetId: %w", err), c, 400)
				return
			}
			assetID = &parsed
		}
		resp, err := r.ListTransactions(userID, assetID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.PUT("/transactions/:transactionId", func(c *gin.Context) {
		transactionID, ok := idFromParam(c, "transactionId")
		if !ok {
			return
		}
		var req api_types.UpdateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
			return
		}
		resp, err := r.UpdateTransaction(transactionID, req)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.DELETE("/transactions/:transactionId", func(c *gin.Context) {
		transactionID, ok := idFromParam(c, "transactionId")
		if !ok {
			return
		}
		resp, err := r.DeleteTransaction(transactionID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/portfolio/summary", func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}
		resp, err := r.GetPortfolioSummary(userID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/portfolio/allocations", func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}
		resp, err := r.GetAllocations(userID)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/portfolio/performers", func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}
		limit := 5
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				returnErrorJsonCode(fmt.Errorf("invalid limit: %w", err), c, 400)
				return
			}
			limit = parsed
		}
		resp, err := r.GetPerformers(userID, limit)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	})

	logger.WithField("port", port).Info("starting api")

	return router.Run(fmt.Sprintf(":%d", port))
}

func idFromParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid %s: %w", name, err), c, 400)
		return uuid.Nil, false
	}
	return id, true
}

func userIDFromQuery(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid userId: %w", err), c, 400)
		return uuid.Nil, false
	}
	return userID, true
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, statusForError(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func statusForError(err error) int {
	var notFound folio_errors.ErrNotFound
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var duplicateAsset folio_errors.ErrDuplicateAsset
	var duplicateTransaction folio_errors.ErrDuplicateTransaction
	if errors.As(err, &duplicateAsset) || errors.As(err, &duplicateTransaction) {
		return http.StatusConflict
	}
	var invalid folio_errors.ErrInvalidTransaction
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
