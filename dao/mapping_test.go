package dao

import (
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"

	"github.com/vapvarun/wc-subscription-protection/model"
)

func contentNode(props map[string]interface{}) neo4j.Node {
	base := map[string]interface{}{
		"id":        "12",
		"type":      "post",
		"title":     "Members digest",
		"permalink": "https://example.com/members-digest/",
		"authorId":  "3",
		"createdAt": "2024-07-07T19:55:23Z",
	}
	for k, v := range props {
		base[k] = v
	}
	return neo4j.Node{Labels: []string{"Content"}, Props: base}
}

func TestMapNodeToContent_Protection(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]interface{}
		want  model.ProtectionConfig
	}{
		{
			name:  "no metadata",
			props: nil,
			want:  model.ProtectionConfig{},
		},
		{
			name: "protected with list",
			props: map[string]interface{}{
				"protected":          "1",
				"requiredProductIds": []interface{}{"42", " 43 ", "", "42"},
				"customMessage":      "Members only",
			},
			want: model.ProtectionConfig{
				Protected:        true,
				RequiredProducts: []model.ProductID{"42", "43"},
				CustomMessage:    "Members only",
			},
		},
		{
			name: "comma separated list",
			props: map[string]interface{}{
				"protected":          "1",
				"requiredProductIds": "42, 7",
			},
			want: model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42", "7"}},
		},
		{
			name: "integer ids",
			props: map[string]interface{}{
				"protected":          "1",
				"requiredProductIds": []interface{}{int64(42)},
			},
			want: model.ProtectionConfig{Protected: true, RequiredProducts: []model.ProductID{"42"}},
		},
		{
			name: "off flag keeps products",
			props: map[string]interface{}{
				"protected":          "0",
				"requiredProductIds": []interface{}{"42"},
			},
			want: model.ProtectionConfig{RequiredProducts: []model.ProductID{"42"}},
		},
		{
			name: "malformed flag is not protected",
			props: map[string]interface{}{
				"protected":          "yes please",
				"requiredProductIds": 3.14,
				"customMessage":      42,
			},
			want: model.ProtectionConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := mapNodeToContent(contentNode(tt.props))
			assert.Equal(t, tt.want.Protected, item.Protection.Protected)
			assert.ElementsMatch(t, tt.want.RequiredProducts, item.Protection.RequiredProducts)
			assert.Equal(t, tt.want.CustomMessage, item.Protection.CustomMessage)
		})
	}
}

func TestMapNodeToContent_Fields(t *testing.T) {
	item := mapNodeToContent(contentNode(map[string]interface{}{"updatedAt": 17}))

	assert.Equal(t, "12", item.ID)
	assert.Equal(t, "post", item.Type)
	assert.Equal(t, "3", item.AuthorID)
	assert.Equal(t, time.Date(2024, time.July, 7, 19, 55, 23, 0, time.UTC), item.CreatedAt)
	assert.True(t, item.UpdatedAt.IsZero())
}

func TestProtectionPropsRoundTrip(t *testing.T) {
	cfg := model.ProtectionConfig{
		Protected:        true,
		RequiredProducts: []model.ProductID{"42", "7"},
		CustomMessage:    "Subscribe",
	}
	props := protectionProps(cfg)
	assert.Equal(t, "1", props["protected"])

	node := contentNode(map[string]interface{}{
		"protected":          props["protected"],
		"requiredProductIds": props["requiredProductIds"],
		"customMessage":      props["customMessage"],
	})
	assert.Equal(t, cfg, mapNodeToContent(node).Protection)
}

func TestMapNodeToWidget(t *testing.T) {
	widget := mapNodeToWidget(neo4j.Node{Props: map[string]interface{}{
		"id":         "sidebar-1",
		"title":      "",
		"showStatus": true,
		"showToggle": "true",
	}})

	assert.Equal(t, "sidebar-1", widget.ID)
	assert.True(t, widget.ShowStatus)
	assert.False(t, widget.ShowToggle)
	assert.Equal(t, model.DefaultWidgetTitle, widget.DisplayTitle())
}
