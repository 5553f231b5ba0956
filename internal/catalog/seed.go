package catalog

// SeedTag 配置文件中的预置标签
type SeedTag struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Color       string `mapstructure:"color"`
	Category    string `mapstructure:"category"`
}

// Seed 批量预置标签，已存在的标签名跳过，返回实际创建数
func (c *Catalog) Seed(tags []SeedTag) int {
	created := 0
	for _, st := range tags {
		_, err := c.CreateTag(TagFields{
			Name:        st.Name,
			Description: st.Description,
			Color:       st.Color,
			Category:    st.Category,
		})
		if err != nil {
			continue
		}
		created++
	}
	return created
}
