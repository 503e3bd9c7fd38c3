// Package api 處理 HTTP 路由與 WebSocket 連接點。
//
// 這個包包含所有的 HTTP 處理器（handlers），負責將 HTTP 請求與 WebSocket
// 事件轉換為適當的服務調用，並將結果轉換回 HTTP 響應或出站事件。
package api
