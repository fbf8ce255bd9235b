package kafka

import (
	"fmt"
	"strconv"
	"time"
)

const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据
	Old []map[string]interface{} `json:"old"`

	// 字段类型元数据
	SqlType   map[string]int    `json:"sqlType"`   // JDBC 类型 ID
	MysqlType map[string]string `json:"mysqlType"` // MySQL 类型描述
}

// Canal 行数据全部以字符串抵达，下面的转换函数统一兜底空值

func StrToString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func StrToUint64(v interface{}) uint64 {
	n, _ := strconv.ParseUint(StrToString(v), 10, 64)
	return n
}

func StrToInt(v interface{}) int {
	n, _ := strconv.Atoi(StrToString(v))
	return n
}

func StrToInt64(v interface{}) int64 {
	n, _ := strconv.ParseInt(StrToString(v), 10, 64)
	return n
}

func StrToFloat64(v interface{}) float64 {
	f, _ := strconv.ParseFloat(StrToString(v), 64)
	return f
}

func StrToBool(v interface{}) bool {
	return StrToString(v) == "1" || StrToString(v) == "true"
}

func StrToDateTime(v interface{}) time.Time {
	t, _ := time.ParseInLocation("2006-01-02 15:04:05", StrToString(v), time.Local)
	return t
}
