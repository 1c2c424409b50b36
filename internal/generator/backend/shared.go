package backend

import (
	"bytes"
	"fmt"

	"github.com/apiforge/apiforge/internal/model"
)

// mainFile renders the application bootstrap. Swagger setup is only wired
// when the feature is enabled.
func (g *Generator) mainFile(cfg *model.ProjectConfig) string {
	var buf bytes.Buffer
	buf.WriteString("import { ValidationPipe } from '@nestjs/common';\n")
	buf.WriteString("import { NestFactory } from '@nestjs/core';\n")
	if cfg.Features.Swagger {
		buf.WriteString("import { DocumentBuilder, SwaggerModule } from '@nestjs/swagger';\n")
	}
	buf.WriteString("import { AppModule } from './app.module';\n\n")

	buf.WriteString("async function bootstrap() {\n")
	buf.WriteString("  const app = await NestFactory.create(AppModule);\n")
	buf.WriteString("  app.useGlobalPipes(new ValidationPipe({ whitelist: true, transform: true }));\n")
	if cfg.Features.Swagger {
		buf.WriteString("\n  const config = new DocumentBuilder()\n")
		fmt.Fprintf(&buf, "    .setTitle('%s API')\n", cfg.Project.Name)
		fmt.Fprintf(&buf, "    .setVersion('%s')\n", cfg.Project.Version)
		if cfg.Features.Authentication {
			buf.WriteString("    .addBearerAuth()\n")
		}
		buf.WriteString("    .build();\n")
		buf.WriteString("  const document = SwaggerModule.createDocument(app, config);\n")
		buf.WriteString("  SwaggerModule.setup('api', app, document);\n")
	}
	buf.WriteString("\n  await app.listen(process.env.PORT ?? 3000);\n")
	buf.WriteString("}\n")
	buf.WriteString("bootstrap();\n")

	return buf.String()
}

// appModuleFile renders the root module importing the database config and
// every entity module.
func (g *Generator) appModuleFile(cfg *model.ProjectConfig, m *model.DataModel) string {
	var buf bytes.Buffer
	buf.WriteString("import { Module } from '@nestjs/common';\n")
	buf.WriteString("import { TypeOrmModule } from '@nestjs/typeorm';\n")
	buf.WriteString("import { databaseConfig } from './config/database.config';\n")
	for i := range m.Entities {
		n := namesFor(&m.Entities[i])
		fmt.Fprintf(&buf, "import { %sModule } from './%s/%s.module';\n", n.Pascal, n.Kebab, n.Kebab)
	}
	if cfg.Features.Authentication {
		buf.WriteString("import { AuthModule } from './auth/auth.module';\n")
	}
	buf.WriteString("\n@Module({\n")
	buf.WriteString("  imports: [\n")
	buf.WriteString("    TypeOrmModule.forRoot(databaseConfig),\n")
	for i := range m.Entities {
		n := namesFor(&m.Entities[i])
		fmt.Fprintf(&buf, "    %sModule,\n", n.Pascal)
	}
	if cfg.Features.Authentication {
		buf.WriteString("    AuthModule,\n")
	}
	buf.WriteString("  ],\n")
	buf.WriteString("})\n")
	buf.WriteString("export class AppModule {}\n")

	return buf.String()
}

// databaseConfigFile renders TypeORM connection options from the database
// section of the project config.
func (g *Generator) databaseConfigFile(cfg *model.ProjectConfig) string {
	db := cfg.Database
	driver := string(db.Type)
	if db.Type == model.PostgreSQL {
		driver = "postgres"
	}
	port := db.Port
	if port == 0 {
		port = defaultPort(db.Type)
	}

	var buf bytes.Buffer
	buf.WriteString("import { TypeOrmModuleOptions } from '@nestjs/typeorm';\n\n")
	buf.WriteString("export const databaseConfig: TypeOrmModuleOptions = {\n")
	fmt.Fprintf(&buf, "  type: '%s',\n", driver)
	fmt.Fprintf(&buf, "  host: process.env.DB_HOST ?? '%s',\n", orDefault(db.Host, "localhost"))
	fmt.Fprintf(&buf, "  port: Number(process.env.DB_PORT ?? %d),\n", port)
	buf.WriteString("  username: process.env.DB_USERNAME ?? 'app',\n")
	buf.WriteString("  password: process.env.DB_PASSWORD ?? 'app',\n")
	fmt.Fprintf(&buf, "  database: process.env.DB_NAME ?? '%s',\n", orDefault(db.Database, "app"))
	buf.WriteString("  autoLoadEntities: true,\n")
	buf.WriteString("  synchronize: process.env.NODE_ENV !== 'production',\n")
	buf.WriteString("};\n")

	return buf.String()
}

func defaultPort(t model.DatabaseType) int {
	switch t {
	case model.MySQL:
		return 3306
	case model.MongoDB:
		return 27017
	case model.SQLite:
		return 0
	default:
		return 5432
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (g *Generator) authModuleFile() string {
	return `import { Module } from '@nestjs/common';
import { JwtModule } from '@nestjs/jwt';
import { PassportModule } from '@nestjs/passport';
import { AuthService } from './auth.service';
import { JwtStrategy } from './jwt.strategy';

@Module({
  imports: [
    PassportModule,
    JwtModule.register({
      secret: process.env.JWT_SECRET ?? 'change-me',
      signOptions: { expiresIn: '1h' },
    }),
  ],
  providers: [AuthService, JwtStrategy],
  exports: [AuthService],
})
export class AuthModule {}
`
}

func (g *Generator) authServiceFile() string {
	return `import { Injectable, UnauthorizedException } from '@nestjs/common';
import { JwtService } from '@nestjs/jwt';

@Injectable()
export class AuthService {
  constructor(private readonly jwtService: JwtService) {}

  async validateUser(username: string, password: string): Promise<{ id: string; username: string }> {
    // Replace with a lookup against the user store.
    if (!username || !password) {
      throw new UnauthorizedException();
    }
    return { id: username, username };
  }

  async login(user: { id: string; username: string }): Promise<{ accessToken: string }> {
    const payload = { sub: user.id, username: user.username };
    return { accessToken: await this.jwtService.signAsync(payload) };
  }
}
`
}

func (g *Generator) jwtStrategyFile() string {
	return `import { Injectable } from '@nestjs/common';
import { PassportStrategy } from '@nestjs/passport';
import { ExtractJwt, Strategy } from 'passport-jwt';

@Injectable()
export class JwtStrategy extends PassportStrategy(Strategy) {
  constructor() {
    super({
      jwtFromRequest: ExtractJwt.fromAuthHeaderAsBearerToken(),
      ignoreExpiration: false,
      secretOrKey: process.env.JWT_SECRET ?? 'change-me',
    });
  }

  async validate(payload: { sub: string; username: string }) {
    return { id: payload.sub, username: payload.username };
  }
}
`
}

func (g *Generator) jwtGuardFile() string {
	return `import { Injectable } from '@nestjs/common';
import { AuthGuard } from '@nestjs/passport';

@Injectable()
export class JwtAuthGuard extends AuthGuard('jwt') {}
`
}

// packageJSONFile renders the generated project manifest.
func (g *Generator) packageJSONFile(cfg *model.ProjectConfig) string {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	fmt.Fprintf(&buf, "  \"name\": \"%s\",\n", orDefault(cfg.Project.Name, "generated-api"))
	fmt.Fprintf(&buf, "  \"version\": \"%s\",\n", orDefault(cfg.Project.Version, "0.1.0"))
	if cfg.Project.Description != "" {
		fmt.Fprintf(&buf, "  \"description\": \"%s\",\n", cfg.Project.Description)
	}
	if cfg.Project.Author != "" {
		fmt.Fprintf(&buf, "  \"author\": \"%s\",\n", cfg.Project.Author)
	}
	buf.WriteString(`  "scripts": {
    "build": "nest build",
    "start": "nest start",
    "start:dev": "nest start --watch",
    "test": "jest"
  },
  "dependencies": {
    "@nestjs/common": "^10.0.0",
    "@nestjs/core": "^10.0.0",
    "@nestjs/mapped-types": "^2.0.0",
    "@nestjs/platform-express": "^10.0.0",
    "@nestjs/typeorm": "^10.0.0",
    "class-transformer": "^0.5.1",
    "class-validator": "^0.14.0",
    "reflect-metadata": "^0.1.13",
    "rxjs": "^7.8.0",
    "typeorm": "^0.3.17"`)
	if cfg.Features.Authentication {
		buf.WriteString(`,
    "@nestjs/jwt": "^10.0.0",
    "@nestjs/passport": "^10.0.0",
    "passport": "^0.6.0",
    "passport-jwt": "^4.0.1"`)
	}
	if cfg.Features.Swagger {
		buf.WriteString(`,
    "@nestjs/swagger": "^7.0.0"`)
	}
	buf.WriteString("\n  },\n")
	buf.WriteString(`  "devDependencies": {
    "@nestjs/cli": "^10.0.0",
    "@nestjs/testing": "^10.0.0",
    "@types/node": "^20.0.0",
    "jest": "^29.5.0",
    "ts-jest": "^29.1.0",
    "typescript": "^5.1.0"
  }
}
`)
	return buf.String()
}
