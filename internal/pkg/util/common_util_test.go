package util

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "无标签",
			content: "plain description without tags",
			want:    nil,
		},
		{
			name:    "提取并转小写",
			content: "new remix of my track #Synthwave #DIY",
			want:    []string{"synthwave", "diy"},
		},
		{
			name:    "去重",
			content: "#go tips and more #go tricks",
			want:    []string{"go"},
		},
		{
			name:    "剥掉尾部标点",
			content: "finished it! #done. thoughts? #done,",
			want:    []string{"done"},
		},
		{
			name:    "中文标签",
			content: "今天的练习 #手写 真不错",
			want:    []string{"手写"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTags(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTags(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	if got := EncodeCursor(nil); got != "" {
		t.Errorf("空 Sort 应编码为空串, got %q", got)
	}

	values, err := DecodeCursor("")
	if err != nil || values != nil {
		t.Errorf("空串应解码为 nil, got %v, err %v", values, err)
	}

	cursor := EncodeCursor([]interface{}{3.14, "abc", float64(42)})
	if cursor == "" {
		t.Fatal("cursor 不应为空")
	}
	decoded, err := DecodeCursor(cursor)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("len = %d, want 3", len(decoded))
	}
	if decoded[1] != "abc" {
		t.Errorf("decoded[1] = %v, want abc", decoded[1])
	}

	if _, err = DecodeCursor("%%%not-base64%%%"); err == nil {
		t.Error("非法游标应返回错误")
	}
}

func TestGetSafeContentType(t *testing.T) {
	reader := strings.NewReader("\xff\xd8\xff\xe0 jpeg header bytes")
	contentType, err := GetSafeContentType(reader)
	if err != nil {
		t.Fatalf("GetSafeContentType() error = %v", err)
	}
	if contentType != "image/jpeg" {
		t.Errorf("contentType = %q, want image/jpeg", contentType)
	}

	// 嗅探后指针要回到开头
	if pos, _ := reader.Seek(0, 1); pos != 0 {
		t.Errorf("reader 偏移 = %d, want 0", pos)
	}
}
