package handlers

import (
	"net/http"
	"strings"
	"time"

	"inkwell/internal/api"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AIHandler renders the AI writing helper fragments. Everything here is
// best-effort: when the model is unreachable the page simply shows nothing.
type AIHandler struct {
	api *api.Client
	llm *services.LLMService
}

func NewAIHandler(client *api.Client, llm *services.LLMService) *AIHandler {
	return &AIHandler{api: client, llm: llm}
}

// Ideas generates blog post ideas for a topic (author dashboard fragment).
func (h *AIHandler) Ideas(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		c.String(http.StatusBadRequest, "Enter a topic first.")
		return
	}
	if !h.llm.Enabled() {
		c.String(http.StatusServiceUnavailable, "AI helpers are not configured.")
		return
	}

	ideas, err := h.llm.GeneratePostIdeas(topic)
	if err != nil {
		logrus.WithError(err).WithField("topic", topic).Warn("generate ideas")
		c.String(http.StatusBadGateway, "Idea generation failed, please retry.")
		return
	}

	Render(c, http.StatusOK, "components/ideas.html", gin.H{
		"Topic": topic,
		"Ideas": ideas,
	})
}

// Summary renders an AI summary box for a post. Summaries are cached hard
// since the underlying article rarely changes.
func (h *AIHandler) Summary(c *gin.Context) {
	pid := c.Param("pid")

	cacheKey := "ai:summary:" + pid
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if summary, ok := cached.(string); ok {
			Render(c, http.StatusOK, "components/summary.html", gin.H{"Summary": summary})
			return
		}
	}

	if !h.llm.Enabled() {
		c.Status(http.StatusNoContent)
		return
	}

	post, err := h.api.GetPost(c.Request.Context(), pid)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	summary, err := h.llm.GenerateSummary(post.Title, post.Content)
	if err != nil {
		logrus.WithError(err).WithField("post", pid).Warn("generate summary")
		c.Status(http.StatusNoContent)
		return
	}

	utils.GetCache().Set(cacheKey, summary, time.Hour)
	Render(c, http.StatusOK, "components/summary.html", gin.H{"Summary": summary})
}
