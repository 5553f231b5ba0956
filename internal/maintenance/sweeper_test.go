package maintenance

import (
	"testing"
	"time"

	"github.com/papergraph/papergraph/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeperRun(t *testing.T) {
	cat := catalog.New()
	a, err := cat.CreateArticle(catalog.ArticleFields{
		Title: "文章", Authors: []string{"张三"}, AuthorString: "张三",
		PublishYear: 2023, Language: catalog.LangZH,
	})
	require.NoError(t, err)
	tag, err := cat.CreateTag(catalog.TagFields{Name: "深度学习", Color: "#3B82F6", Category: "method"})
	require.NoError(t, err)
	cat.Associate(a.ID, tag.ID, 1.0)

	sweeper := NewSweeper(cat)
	sweeper.Run()

	stats := sweeper.Stats()
	assert.Equal(t, "Idle", stats.Status)
	assert.Equal(t, int64(1), stats.RunCount)
	assert.Zero(t, stats.OrphansRemoved, "一致的目录不应有孤儿")
	assert.Zero(t, stats.CountersRepaired)
	assert.NotEmpty(t, stats.LastRunTime)

	sweeper.Run()
	assert.Equal(t, int64(2), sweeper.Stats().RunCount)
}

func TestSweeperScheduleBadExpr(t *testing.T) {
	sweeper := NewSweeper(catalog.New())
	assert.Error(t, sweeper.Schedule("not-a-cron"), "非法表达式应报错")
	assert.NoError(t, sweeper.Schedule("@every 10m"))
}

// Start 之后 Stop 应返回且调度器不再触发，未 Start 时调用也不应阻塞
func TestSweeperStop(t *testing.T) {
	sweeper := NewSweeper(catalog.New())
	require.NoError(t, sweeper.Schedule("@every 1h"))

	sweeper.Start()
	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop 不应阻塞")
	}

	count := sweeper.Stats().RunCount
	sweeper.Run()
	assert.Equal(t, count+1, sweeper.Stats().RunCount, "停止调度后仍可手动触发")

	NewSweeper(catalog.New()).Stop()
}
