package export

// RenderTXT 內文原樣以 UTF-8 輸出，不加標題也不做清理
func RenderTXT(doc Document) []byte {
	return []byte(doc.Body)
}
