// Command store_inspect dumps the persisted collections as tables.
// Handy for checking what the server actually wrote.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"chat-relay/repositories"
	"chat-relay/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "", "path to the badger store")
	flag.Parse()
	if *dbPath == "" {
		log.Fatal("usage: store_inspect -db <path>")
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening store: ", err)
	}
	defer db.Close()

	logger := logs.GetLoggerFromString("WARN")
	store := storage.New(db, logger)
	chats := repositories.NewChatRepository(store, logger)
	messages := repositories.NewMessageRepository(store, logger)
	users := repositories.NewUserRepository(store, logger)

	allUsers, err := users.All()
	if err != nil {
		log.Fatal(err)
	}
	userTable := newTable([]string{"ID", "Username", "Name"})
	for _, user := range allUsers {
		userTable.Append([]string{user.ID, user.Username, user.Name})
	}
	userTable.Render()

	allChats, err := chats.All()
	if err != nil {
		log.Fatal(err)
	}
	chatTable := newTable([]string{"ID", "Last Message", "Last Time", "Members"})
	for _, chat := range allChats {
		chatTable.Append([]string{
			chat.ID,
			chat.LastMessage,
			chat.LastTime.Format("2006-01-02 15:04:05"),
			strings.Join(chat.Members, ", "),
		})
	}
	chatTable.Render()

	allMessages, err := messages.All()
	if err != nil {
		log.Fatal(err)
	}
	messageTable := newTable([]string{"ID", "Chat", "Sender", "Content", "Time"})
	for _, message := range allMessages {
		messageTable.Append([]string{
			message.ID.String(),
			message.ChatID,
			message.SenderUsername,
			message.Content,
			message.At.Format("2006-01-02 15:04:05"),
		})
	}
	messageTable.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	return badger.Open(opts)
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
