package backend

import (
	"bytes"
	"fmt"

	"github.com/apiforge/apiforge/internal/model"
)

func (g *Generator) dockerfile() string {
	return `FROM node:20-alpine AS build
WORKDIR /app
COPY package*.json ./
RUN npm ci
COPY . .
RUN npm run build

FROM node:20-alpine
WORKDIR /app
ENV NODE_ENV=production
COPY package*.json ./
RUN npm ci --omit=dev
COPY --from=build /app/dist ./dist
EXPOSE 3000
CMD ["node", "dist/main.js"]
`
}

// composeFile renders a compose document with the app plus a database
// service matching the configured engine. SQLite needs no companion
// container, MongoDB swaps the image and port.
func (g *Generator) composeFile(cfg *model.ProjectConfig) string {
	db := cfg.Database

	var buf bytes.Buffer
	buf.WriteString("services:\n")
	buf.WriteString("  app:\n")
	buf.WriteString("    build: .\n")
	buf.WriteString("    ports:\n")
	buf.WriteString("      - \"3000:3000\"\n")

	if db.Type == model.SQLite {
		return buf.String()
	}

	buf.WriteString("    environment:\n")
	buf.WriteString("      DB_HOST: db\n")
	fmt.Fprintf(&buf, "      DB_PORT: \"%d\"\n", defaultPort(db.Type))
	fmt.Fprintf(&buf, "      DB_NAME: %s\n", orDefault(db.Database, "app"))
	buf.WriteString("    depends_on:\n")
	buf.WriteString("      - db\n")
	buf.WriteString("  db:\n")

	switch db.Type {
	case model.MySQL:
		buf.WriteString("    image: mysql:8\n")
		buf.WriteString("    environment:\n")
		fmt.Fprintf(&buf, "      MYSQL_DATABASE: %s\n", orDefault(db.Database, "app"))
		buf.WriteString("      MYSQL_USER: app\n")
		buf.WriteString("      MYSQL_PASSWORD: app\n")
		buf.WriteString("      MYSQL_ROOT_PASSWORD: root\n")
		buf.WriteString("    ports:\n")
		buf.WriteString("      - \"3306:3306\"\n")
	case model.MongoDB:
		buf.WriteString("    image: mongo:7\n")
		buf.WriteString("    ports:\n")
		buf.WriteString("      - \"27017:27017\"\n")
	default:
		buf.WriteString("    image: postgres:16-alpine\n")
		buf.WriteString("    environment:\n")
		fmt.Fprintf(&buf, "      POSTGRES_DB: %s\n", orDefault(db.Database, "app"))
		buf.WriteString("      POSTGRES_USER: app\n")
		buf.WriteString("      POSTGRES_PASSWORD: app\n")
		buf.WriteString("    ports:\n")
		buf.WriteString("      - \"5432:5432\"\n")
	}

	buf.WriteString("    volumes:\n")
	buf.WriteString("      - db-data:/var/lib/data\n")
	buf.WriteString("volumes:\n")
	buf.WriteString("  db-data:\n")

	return buf.String()
}
