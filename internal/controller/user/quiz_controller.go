package user

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lshigami/QuizMaster/internal/catalog"
	"github.com/lshigami/QuizMaster/internal/dto"
	"github.com/lshigami/QuizMaster/internal/model"
	"github.com/lshigami/QuizMaster/internal/offline"
	"github.com/lshigami/QuizMaster/internal/service"
	"github.com/rs/zerolog/log"
)

var questionCounts = []int{5, 10, 15, 20}

type QuizController struct {
	acquisitionService service.QuizAcquisitionService
	syncService        service.QuizSyncService
	connectivity       service.ConnectivityService
	catalog            *catalog.Catalog
	offline            *offline.FallbackSet
}

func NewQuizController(
	acquisitionService service.QuizAcquisitionService,
	syncService service.QuizSyncService,
	connectivity service.ConnectivityService,
	cat *catalog.Catalog,
	offlineSet *offline.FallbackSet,
) *QuizController {
	return &QuizController{
		acquisitionService: acquisitionService,
		syncService:        syncService,
		connectivity:       connectivity,
		catalog:            cat,
		offline:            offlineSet,
	}
}

// AcquireQuiz godoc
// @Summary Get a quiz for the chosen setup
// @Description Serves a validated quiz from cache, live generation or bundled offline data, in that order.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Param quiz_setup body dto.AcquireQuizRequest true "Quiz setup"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz setup"
// @Failure 503 {object} dto.ErrorResponse "No quiz could be produced"
// @Router /quizzes [post]
func (c *QuizController) AcquireQuiz(ctx *gin.Context) {
	requestID := ctx.GetString("request_id")

	var req dto.AcquireQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Str("requestID", requestID).Msg("AcquireQuiz: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid quiz setup", Details: []string{err.Error()}})
		return
	}

	cfg := model.QuizRequestConfig{
		NumQuestions:  req.NumQuestions,
		Category:      req.Category,
		CategoryKey:   req.CategoryKey,
		Difficulty:    model.Difficulty(req.Difficulty),
		Language:      req.Language,
		Timed:         req.Timed,
		TimerDuration: req.TimerDuration,
		NumOptions:    model.DefaultNumOptions,
	}

	questions, err := c.acquisitionService.AcquireQuiz(ctx.Request.Context(), cfg)
	if err != nil {
		var acqErr *service.AcquisitionError
		if errors.As(err, &acqErr) {
			log.Warn().Str("requestID", requestID).Str("cacheKey", cfg.CacheKey()).Msg("AcquireQuiz: No quiz available")
			ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: acqErr.Error()})
			return
		}
		log.Error().Err(err).Str("requestID", requestID).Msg("AcquireQuiz: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load quiz"})
		return
	}

	resp := dto.QuizResponse{RequestID: requestID, TotalQuestions: len(questions)}
	if err := copier.Copy(&resp.Questions, &questions); err != nil {
		log.Error().Err(err).Str("requestID", requestID).Msg("AcquireQuiz: Failed to map questions")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load quiz"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetCatalog godoc
// @Summary List quiz categories, languages and difficulties
// @Tags Quizzes
// @Produce json
// @Success 200 {object} dto.CatalogResponse
// @Router /catalog [get]
func (c *QuizController) GetCatalog(ctx *gin.Context) {
	resp := dto.CatalogResponse{QuestionCounts: questionCounts}
	copier.Copy(&resp.Categories, &c.catalog.Categories)
	copier.Copy(&resp.Languages, &c.catalog.Languages)
	for _, d := range model.Difficulties {
		resp.Difficulties = append(resp.Difficulties, string(d))
	}
	resp.OfflineCategories = c.offline.Categories()
	sort.Strings(resp.OfflineCategories)

	ctx.JSON(http.StatusOK, resp)
}

// GetSyncStatus godoc
// @Summary Background sync status
// @Description Reports whether a sync cycle is running and whether new quizzes were cached since the last acknowledgement.
// @Tags Sync
// @Produce json
// @Success 200 {object} dto.SyncStatusResponse
// @Router /sync/status [get]
func (c *QuizController) GetSyncStatus(ctx *gin.Context) {
	status := c.syncService.Status()

	var resp dto.SyncStatusResponse
	copier.Copy(&resp, &status)
	resp.Online = c.connectivity.IsOnline(ctx.Request.Context())

	ctx.JSON(http.StatusOK, resp)
}

// AcknowledgeSync godoc
// @Summary Acknowledge the new-content notification
// @Tags Sync
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /sync/acknowledge [post]
func (c *QuizController) AcknowledgeSync(ctx *gin.Context) {
	c.syncService.AcknowledgeNewContent()
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Acknowledged"})
}
