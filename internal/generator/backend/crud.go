package backend

import (
	"bytes"
	"fmt"

	"github.com/apiforge/apiforge/internal/model"
)

// serviceFile renders the CRUD service for one entity: create, paginated
// findAll, findOne, update and remove against a TypeORM repository.
func (g *Generator) serviceFile(e *model.Entity, n entityNames) string {
	pkName := "id"
	if pk, ok := e.PrimaryKey(); ok {
		pkName = pk.Name
	}

	var buf bytes.Buffer
	buf.WriteString("import { Injectable, NotFoundException } from '@nestjs/common';\n")
	buf.WriteString("import { InjectRepository } from '@nestjs/typeorm';\n")
	buf.WriteString("import { Repository } from 'typeorm';\n")
	fmt.Fprintf(&buf, "import { %s } from './%s.entity';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { Create%sDto } from './dto/create-%s.dto';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { Update%sDto } from './dto/update-%s.dto';\n\n", n.Pascal, n.Kebab)

	buf.WriteString("@Injectable()\n")
	fmt.Fprintf(&buf, "export class %sService {\n", n.Pascal)
	buf.WriteString("  constructor(\n")
	fmt.Fprintf(&buf, "    @InjectRepository(%s)\n", n.Pascal)
	fmt.Fprintf(&buf, "    private readonly repository: Repository<%s>,\n", n.Pascal)
	buf.WriteString("  ) {}\n\n")

	fmt.Fprintf(&buf, "  async create(dto: Create%sDto): Promise<%s> {\n", n.Pascal, n.Pascal)
	buf.WriteString("    const entity = this.repository.create(dto);\n")
	buf.WriteString("    return this.repository.save(entity);\n")
	buf.WriteString("  }\n\n")

	fmt.Fprintf(&buf, "  async findAll(page = 1, limit = 20): Promise<{ data: %s[]; meta: { page: number; limit: number; totalItems: number; totalPages: number } }> {\n", n.Pascal)
	buf.WriteString("    const [data, totalItems] = await this.repository.findAndCount({\n")
	buf.WriteString("      skip: (page - 1) * limit,\n")
	buf.WriteString("      take: limit,\n")
	buf.WriteString("    });\n")
	buf.WriteString("    return {\n")
	buf.WriteString("      data,\n")
	buf.WriteString("      meta: { page, limit, totalItems, totalPages: Math.ceil(totalItems / limit) },\n")
	buf.WriteString("    };\n")
	buf.WriteString("  }\n\n")

	fmt.Fprintf(&buf, "  async findOne(id: string): Promise<%s> {\n", n.Pascal)
	fmt.Fprintf(&buf, "    const entity = await this.repository.findOne({ where: { %s: id as any } });\n", pkName)
	buf.WriteString("    if (!entity) {\n")
	fmt.Fprintf(&buf, "      throw new NotFoundException(`%s ${id} not found`);\n", n.Pascal)
	buf.WriteString("    }\n")
	buf.WriteString("    return entity;\n")
	buf.WriteString("  }\n\n")

	fmt.Fprintf(&buf, "  async update(id: string, dto: Update%sDto): Promise<%s> {\n", n.Pascal, n.Pascal)
	buf.WriteString("    const entity = await this.findOne(id);\n")
	buf.WriteString("    Object.assign(entity, dto);\n")
	buf.WriteString("    return this.repository.save(entity);\n")
	buf.WriteString("  }\n\n")

	buf.WriteString("  async remove(id: string): Promise<void> {\n")
	buf.WriteString("    const entity = await this.findOne(id);\n")
	if e.SoftDelete {
		buf.WriteString("    await this.repository.softRemove(entity);\n")
	} else {
		buf.WriteString("    await this.repository.remove(entity);\n")
	}
	buf.WriteString("  }\n")
	buf.WriteString("}\n")

	return buf.String()
}

// controllerFile renders the HTTP controller wiring the service operations
// to routes. The route base follows the pluralized kebab entity name, the
// same base the OpenAPI paths use.
func (g *Generator) controllerFile(cfg *model.ProjectConfig, e *model.Entity, n entityNames) string {
	var buf bytes.Buffer
	buf.WriteString("import { Body, Controller, Delete, Get, HttpCode, Param, Post, Put, Query")
	if cfg.Features.Authentication {
		buf.WriteString(", UseGuards")
	}
	buf.WriteString(" } from '@nestjs/common';\n")
	if cfg.Features.Authentication {
		buf.WriteString("import { JwtAuthGuard } from '../auth/jwt-auth.guard';\n")
	}
	fmt.Fprintf(&buf, "import { %sService } from './%s.service';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { Create%sDto } from './dto/create-%s.dto';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { Update%sDto } from './dto/update-%s.dto';\n\n", n.Pascal, n.Kebab)

	if cfg.Features.Authentication {
		buf.WriteString("@UseGuards(JwtAuthGuard)\n")
	}
	fmt.Fprintf(&buf, "@Controller('%s')\n", n.Plural)
	fmt.Fprintf(&buf, "export class %sController {\n", n.Pascal)
	fmt.Fprintf(&buf, "  constructor(private readonly service: %sService) {}\n\n", n.Pascal)

	buf.WriteString("  @Get()\n")
	buf.WriteString("  findAll(@Query('page') page = 1, @Query('limit') limit = 20) {\n")
	buf.WriteString("    return this.service.findAll(Number(page), Number(limit));\n")
	buf.WriteString("  }\n\n")

	buf.WriteString("  @Post()\n")
	fmt.Fprintf(&buf, "  create(@Body() dto: Create%sDto) {\n", n.Pascal)
	buf.WriteString("    return this.service.create(dto);\n")
	buf.WriteString("  }\n\n")

	buf.WriteString("  @Get(':id')\n")
	buf.WriteString("  findOne(@Param('id') id: string) {\n")
	buf.WriteString("    return this.service.findOne(id);\n")
	buf.WriteString("  }\n\n")

	buf.WriteString("  @Put(':id')\n")
	fmt.Fprintf(&buf, "  update(@Param('id') id: string, @Body() dto: Update%sDto) {\n", n.Pascal)
	buf.WriteString("    return this.service.update(id, dto);\n")
	buf.WriteString("  }\n\n")

	buf.WriteString("  @Delete(':id')\n")
	buf.WriteString("  @HttpCode(204)\n")
	buf.WriteString("  remove(@Param('id') id: string) {\n")
	buf.WriteString("    return this.service.remove(id);\n")
	buf.WriteString("  }\n")
	buf.WriteString("}\n")

	return buf.String()
}

// moduleFile renders the NestJS module aggregating one entity's fragments.
func (g *Generator) moduleFile(n entityNames) string {
	var buf bytes.Buffer
	buf.WriteString("import { Module } from '@nestjs/common';\n")
	buf.WriteString("import { TypeOrmModule } from '@nestjs/typeorm';\n")
	fmt.Fprintf(&buf, "import { %s } from './%s.entity';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { %sService } from './%s.service';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { %sController } from './%s.controller';\n\n", n.Pascal, n.Kebab)

	buf.WriteString("@Module({\n")
	fmt.Fprintf(&buf, "  imports: [TypeOrmModule.forFeature([%s])],\n", n.Pascal)
	fmt.Fprintf(&buf, "  controllers: [%sController],\n", n.Pascal)
	fmt.Fprintf(&buf, "  providers: [%sService],\n", n.Pascal)
	fmt.Fprintf(&buf, "  exports: [%sService],\n", n.Pascal)
	buf.WriteString("})\n")
	fmt.Fprintf(&buf, "export class %sModule {}\n", n.Pascal)

	return buf.String()
}

// serviceSpecFile renders a unit-test skeleton for the entity service.
func (g *Generator) serviceSpecFile(e *model.Entity, n entityNames) string {
	var buf bytes.Buffer
	buf.WriteString("import { Test } from '@nestjs/testing';\n")
	buf.WriteString("import { getRepositoryToken } from '@nestjs/typeorm';\n")
	fmt.Fprintf(&buf, "import { %s } from './%s.entity';\n", n.Pascal, n.Kebab)
	fmt.Fprintf(&buf, "import { %sService } from './%s.service';\n\n", n.Pascal, n.Kebab)

	fmt.Fprintf(&buf, "describe('%sService', () => {\n", n.Pascal)
	fmt.Fprintf(&buf, "  let service: %sService;\n\n", n.Pascal)
	buf.WriteString("  beforeEach(async () => {\n")
	buf.WriteString("    const module = await Test.createTestingModule({\n")
	buf.WriteString("      providers: [\n")
	fmt.Fprintf(&buf, "        %sService,\n", n.Pascal)
	buf.WriteString("        {\n")
	fmt.Fprintf(&buf, "          provide: getRepositoryToken(%s),\n", n.Pascal)
	buf.WriteString("          useValue: { create: jest.fn(), save: jest.fn(), findAndCount: jest.fn(), findOne: jest.fn(), remove: jest.fn(), softRemove: jest.fn() },\n")
	buf.WriteString("        },\n")
	buf.WriteString("      ],\n")
	buf.WriteString("    }).compile();\n\n")
	fmt.Fprintf(&buf, "    service = module.get(%sService);\n", n.Pascal)
	buf.WriteString("  });\n\n")
	buf.WriteString("  it('is defined', () => {\n")
	buf.WriteString("    expect(service).toBeDefined();\n")
	buf.WriteString("  });\n")
	buf.WriteString("});\n")

	return buf.String()
}
