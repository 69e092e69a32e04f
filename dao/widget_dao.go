// dao/widget_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	gate_neo4j "github.com/vapvarun/wc-subscription-protection/model/neo4j"
	helper_util "github.com/vapvarun/wc-subscription-protection/util/helper"
)

type WidgetDAO struct {
	Driver neo4j.DriverWithContext
}

func NewWidgetDAO(driver neo4j.DriverWithContext) *WidgetDAO {
	return &WidgetDAO{Driver: driver}
}

func (dao *WidgetDAO) GetWidget(ctx context.Context, widgetID string) (*model.WidgetInstance, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `MATCH (w:` + gate_neo4j.LabelWidget + ` {id: $id}) RETURN w`
		return singleWidget(ctx, tx, query, map[string]interface{}{"id": widgetID})
	})
	if err != nil {
		if !errors.Is(err, gate_errors.ErrWidgetNotFound) {
			logger.Error("Failed to get widget", zap.Error(err), zap.String("widgetID", widgetID))
		}
		return nil, err
	}
	return result.(*model.WidgetInstance), nil
}

// SaveWidget replaces the instance settings, creating the instance on
// first save.
func (dao *WidgetDAO) SaveWidget(ctx context.Context, widget model.WidgetInstance) (*model.WidgetInstance, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MERGE (w:` + gate_neo4j.LabelWidget + ` {id: $id})
        SET w += $props
        RETURN w
        `
		params := map[string]interface{}{
			"id": widget.ID,
			"props": map[string]interface{}{
				"title":      widget.Title,
				"showStatus": widget.ShowStatus,
				"showToggle": widget.ShowToggle,
				"updatedAt":  helper_util.FormatTime(time.Now()),
			},
		}
		return singleWidget(ctx, tx, query, params)
	})
	if err != nil {
		logger.Error("Failed to save widget", zap.Error(err), zap.String("widgetID", widget.ID))
		return nil, err
	}

	logger.Info("Widget saved", zap.String("widgetID", widget.ID))
	return result.(*model.WidgetInstance), nil
}

func singleWidget(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]interface{}) (interface{}, error) {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gate_errors.ErrDatabaseOperation, err)
	}
	if !result.Next(ctx) {
		return nil, gate_errors.ErrWidgetNotFound
	}
	value, ok := result.Record().Get("w")
	if !ok {
		return nil, gate_errors.ErrInternalServer
	}
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, gate_errors.ErrInternalServer
	}
	return mapNodeToWidget(node), nil
}

func mapNodeToWidget(node neo4j.Node) *model.WidgetInstance {
	props := node.Props
	widget := &model.WidgetInstance{
		ID:    stringProp(props, "id"),
		Title: stringProp(props, "title"),
	}
	widget.ShowStatus, _ = props["showStatus"].(bool)
	widget.ShowToggle, _ = props["showToggle"].(bool)
	if t, err := helper_util.ParseNullableTime(props["updatedAt"]); err == nil {
		widget.UpdatedAt = t
	}
	return widget
}
