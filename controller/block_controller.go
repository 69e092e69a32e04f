// controller/block_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vapvarun/wc-subscription-protection/model"
	"github.com/vapvarun/wc-subscription-protection/service"
	"github.com/vapvarun/wc-subscription-protection/util"
)

type BlockController struct {
	blockService service.IBlockService
}

func NewBlockController(blockService service.IBlockService) *BlockController {
	return &BlockController{
		blockService: blockService,
	}
}

// RegisterRoutes registers the API routes
func (bc *BlockController) RegisterRoutes(r *gin.RouterGroup) {
	blocks := r.Group("/blocks/subscription-protection")
	{
		blocks.GET("", bc.DescribeBlock)
		blocks.POST("/render", bc.RenderBlock)
	}
}

func (bc *BlockController) DescribeBlock(c *gin.Context) {
	block, err := bc.blockService.Describe(c)
	if err != nil {
		respondWithServiceError(c, err, "Failed to describe block")
		return
	}

	c.JSON(http.StatusOK, block)
}

func (bc *BlockController) RenderBlock(c *gin.Context) {
	var req model.BlockRenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid block render request", err)
		return
	}

	out, err := bc.blockService.Render(c, req, util.GetRequesterFromContext(c))
	if err != nil {
		respondWithServiceError(c, err, "Failed to render block")
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": out})
}
