// dao/content_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/vapvarun/wc-subscription-protection/audit"
	gate_errors "github.com/vapvarun/wc-subscription-protection/errors"
	logger "github.com/vapvarun/wc-subscription-protection/logging"
	"github.com/vapvarun/wc-subscription-protection/model"
	gate_neo4j "github.com/vapvarun/wc-subscription-protection/model/neo4j"
	helper_util "github.com/vapvarun/wc-subscription-protection/util/helper"
)

type ContentDAO struct {
	Driver       neo4j.DriverWithContext
	AuditService audit.Service
}

func NewContentDAO(driver neo4j.DriverWithContext, auditService audit.Service) *ContentDAO {
	dao := &ContentDAO{Driver: driver, AuditService: auditService}
	if err := dao.EnsureUniqueConstraint(context.Background()); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Content", zap.Error(err))
	}
	return dao
}

func (dao *ContentDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Content ID")
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_content_id IF NOT EXISTS
        FOR (c:` + gate_neo4j.LabelContent + `) REQUIRE c.id IS UNIQUE
        `
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Content ID", zap.Error(err))
		return err
	}
	return nil
}

// UpsertContent registers or refreshes a content item's descriptive fields.
// Protection metadata is left untouched so a host resync cannot reset it.
func (dao *ContentDAO) UpsertContent(ctx context.Context, item model.ContentItem) (*model.ContentItem, error) {
	start := time.Now()
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MERGE (c:` + gate_neo4j.LabelContent + ` {id: $id})
        ON CREATE SET c.createdAt = $now
        SET c += $props
        RETURN c
        `
		now := helper_util.FormatTime(time.Now())
		params := map[string]interface{}{
			"id":  item.ID,
			"now": now,
			"props": map[string]interface{}{
				"type":      item.Type,
				"title":     item.Title,
				"permalink": item.Permalink,
				"authorId":  item.AuthorID,
				"updatedAt": now,
			},
		}
		return singleContent(ctx, tx, query, params)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to upsert content",
			zap.Error(err),
			zap.String("contentID", item.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Content upserted",
		zap.String("contentID", item.ID),
		zap.Duration("duration", duration))
	return result.(*model.ContentItem), nil
}

func (dao *ContentDAO) GetContent(ctx context.Context, contentID string) (*model.ContentItem, error) {
	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `MATCH (c:` + gate_neo4j.LabelContent + ` {id: $id}) RETURN c`
		return singleContent(ctx, tx, query, map[string]interface{}{"id": contentID})
	})
	if err != nil {
		if !errors.Is(err, gate_errors.ErrContentNotFound) {
			logger.Error("Failed to get content", zap.Error(err), zap.String("contentID", contentID))
		}
		return nil, err
	}
	return result.(*model.ContentItem), nil
}

// SaveProtection overwrites all three protection fields and records the
// editor. Concurrent saves are last-write-wins.
func (dao *ContentDAO) SaveProtection(ctx context.Context, contentID string, cfg model.ProtectionConfig, userID string) (*model.ContentItem, error) {
	props := protectionProps(cfg)
	return dao.writeProtection(ctx, contentID, props, userID, audit.ActionSaveProtection)
}

// SetProtected flips only the protected flag, keeping products and message.
func (dao *ContentDAO) SetProtected(ctx context.Context, contentID string, protected bool, userID string) (*model.ContentItem, error) {
	props := map[string]interface{}{gate_neo4j.PropProtected: protectedValue(protected)}
	return dao.writeProtection(ctx, contentID, props, userID, audit.ActionToggleProtection)
}

func (dao *ContentDAO) writeProtection(ctx context.Context, contentID string, props map[string]interface{}, userID, action string) (*model.ContentItem, error) {
	start := time.Now()
	before, err := dao.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}

	session := dao.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
        MATCH (c:` + gate_neo4j.LabelContent + ` {id: $id})
        SET c += $props, c.updatedAt = $now, c.updatedBy = $userId
        WITH c
        OPTIONAL MATCH (c)-[old:` + gate_neo4j.RelUpdatedBy + `]->(:` + gate_neo4j.LabelUser + `)
        DELETE old
        WITH DISTINCT c
        MERGE (u:` + gate_neo4j.LabelUser + ` {id: $userId})
        MERGE (c)-[:` + gate_neo4j.RelUpdatedBy + `]->(u)
        RETURN c
        `
		params := map[string]interface{}{
			"id":     contentID,
			"props":  props,
			"now":    helper_util.FormatTime(time.Now()),
			"userId": userID,
		}
		return singleContent(ctx, tx, query, params)
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to write protection settings",
			zap.Error(err),
			zap.String("contentID", contentID),
			zap.Duration("duration", duration))
		return nil, err
	}
	after := result.(*model.ContentItem)

	logger.Info("Protection settings written",
		zap.String("contentID", contentID),
		zap.String("action", action),
		zap.Bool("protected", after.Protection.Protected),
		zap.Duration("duration", duration))

	auditLog := audit.AuditLog{
		UserID:        userID,
		Action:        action,
		ContentID:     contentID,
		AccessGranted: true,
		ProductIDs:    productStrings(after.Protection.RequiredProducts),
		ChangeDetails: audit.ChangeDetails(before.Protection, after.Protection),
	}
	if err := dao.AuditService.LogAccess(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return after, nil
}

func singleContent(ctx context.Context, tx neo4j.ManagedTransaction, query string, params map[string]interface{}) (interface{}, error) {
	result, err := tx.Run(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gate_errors.ErrDatabaseOperation, err)
	}
	if !result.Next(ctx) {
		return nil, gate_errors.ErrContentNotFound
	}
	value, ok := result.Record().Get("c")
	if !ok {
		return nil, gate_errors.ErrInternalServer
	}
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, gate_errors.ErrInternalServer
	}
	return mapNodeToContent(node), nil
}

func protectionProps(cfg model.ProtectionConfig) map[string]interface{} {
	return map[string]interface{}{
		gate_neo4j.PropProtected:          protectedValue(cfg.Protected),
		gate_neo4j.PropRequiredProductIDs: productStrings(cfg.RequiredProducts),
		gate_neo4j.PropCustomMessage:      cfg.CustomMessage,
	}
}

func protectedValue(protected bool) string {
	if protected {
		return gate_neo4j.ProtectedOn
	}
	return gate_neo4j.ProtectedOff
}

func productStrings(ids []model.ProductID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// mapNodeToContent never fails: a node with missing or malformed
// protection metadata maps to an unprotected item.
func mapNodeToContent(node neo4j.Node) *model.ContentItem {
	props := node.Props
	item := &model.ContentItem{
		ID:         stringProp(props, "id"),
		Type:       stringProp(props, "type"),
		Title:      stringProp(props, "title"),
		Permalink:  stringProp(props, "permalink"),
		AuthorID:   stringProp(props, "authorId"),
		UpdatedBy:  stringProp(props, "updatedBy"),
		Protection: mapProtection(props),
	}

	if t, err := helper_util.ParseNullableTime(props["createdAt"]); err == nil {
		item.CreatedAt = t
	}
	if t, err := helper_util.ParseNullableTime(props["updatedAt"]); err == nil {
		item.UpdatedAt = t
	}
	return item
}

func mapProtection(props map[string]interface{}) model.ProtectionConfig {
	var cfg model.ProtectionConfig

	switch v := props[gate_neo4j.PropProtected].(type) {
	case string:
		cfg.Protected = v == gate_neo4j.ProtectedOn
	case bool:
		cfg.Protected = v
	case int64:
		cfg.Protected = v == 1
	}

	switch v := props[gate_neo4j.PropRequiredProductIDs].(type) {
	case []interface{}:
		raw := make([]string, 0, len(v))
		for _, entry := range v {
			switch id := entry.(type) {
			case string:
				raw = append(raw, id)
			case int64:
				raw = append(raw, fmt.Sprintf("%d", id))
			}
		}
		cfg.RequiredProducts = model.NormalizeProductIDs(raw)
	case []string:
		cfg.RequiredProducts = model.NormalizeProductIDs(v)
	case string:
		cfg.RequiredProducts = model.ParseProductIDs(v)
	}

	if msg, ok := props[gate_neo4j.PropCustomMessage].(string); ok {
		cfg.CustomMessage = strings.TrimSpace(msg)
	}
	return cfg
}

func stringProp(props map[string]interface{}, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}
