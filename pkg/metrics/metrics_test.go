package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化与重复调用保护
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复初始化不应panic（promauto重复注册会panic,靠initialized标记拦截）
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if OrdersCreatedTotal == nil {
		t.Error("OrdersCreatedTotal未初始化")
	}
	if OrdersConfirmedTotal == nil {
		t.Error("OrdersConfirmedTotal未初始化")
	}
	if BroadcastSubscribers == nil {
		t.Error("BroadcastSubscribers未初始化")
	}
	if EmailsSentTotal == nil {
		t.Error("EmailsSentTotal未初始化")
	}
}

// TestCounterVec 测试带标签的计数
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{
		"method": "GET",
		"path":   "/api/book/paged-books",
		"status": "200",
	}

	before := getCounterVecValue(t, HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)
	IncCounterVec(HTTPRequestsTotal, labels)

	value := getCounterVecValue(t, HTTPRequestsTotal, labels)
	if value != before+2 {
		t.Errorf("CounterVec值错误: expected=%f, got=%f", before+2, value)
	}
}

// TestGaugeVec 测试SSE订阅数仪表盘
func TestGaugeVec(t *testing.T) {
	InitMetrics()

	SetGaugeVec(BroadcastSubscribers, map[string]string{"group": "member"}, 3)
	SetGaugeVec(BroadcastSubscribers, map[string]string{"group": "admin"}, 1)

	if v := getGaugeVecValue(t, BroadcastSubscribers, map[string]string{"group": "member"}); v != 3 {
		t.Errorf("GaugeVec值错误: expected=3, got=%f", v)
	}
	if v := getGaugeVecValue(t, BroadcastSubscribers, map[string]string{"group": "admin"}); v != 1 {
		t.Errorf("GaugeVec值错误: expected=1, got=%f", v)
	}
}

// TestHistogramVec 测试请求耗时分布
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "POST", "path": "/api/order/create"}
	before := getHistogramVecCount(t, HTTPRequestDuration, labels)

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.2)

	count := getHistogramVecCount(t, HTTPRequestDuration, labels)
	if count != before+2 {
		t.Errorf("HistogramVec观测次数错误: expected=%d, got=%d", before+2, count)
	}
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取GaugeVec值
func getGaugeVecValue(t *testing.T, gaugeVec *prometheus.GaugeVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	gauge := gaugeVec.With(labels)
	if err := gauge.(prometheus.Gauge).Write(&metric); err != nil {
		t.Fatalf("读取GaugeVec值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	t.Helper()
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
